// Copyright 2025 InterviewAce Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package resume scores a plain-text resume against a target role. The
// analyzer is a bundle of deterministic heuristics: section and contact
// detection, skill matching against role profiles, experience and
// achievement analysis, and an ATS-style formatting check, fused into one
// 0-100 score with per-category breakdown and textual recommendations.
package resume

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Per-category score caps. The categories sum to a 100-point scale.
const (
	maxFormatScore      = 15.0
	maxContactScore     = 5.0
	maxSkillsScore      = 25.0
	maxExperienceScore  = 20.0
	maxEducationScore   = 10.0
	maxAchievementScore = 15.0
	maxATSScore         = 10.0
)

// MinTextLength is the shortest resume text worth analyzing; anything
// below it is rejected at the boundary.
const MinTextLength = 50

var (
	emailRe      = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phoneRe      = regexp.MustCompile(`(\+?\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	linkedinRe   = regexp.MustCompile(`(?i)linkedin\.com/in/[\w-]+`)
	githubRe     = regexp.MustCompile(`(?i)github\.com/[\w-]+`)
	portfolioRe  = regexp.MustCompile(`(?i)(portfolio|website|http)`)
	yearRangeRe  = regexp.MustCompile(`(?i)(20\d{2})\s*[-–—to]+\s*(20\d{2}|present|current)`)
	explicitYrRe = regexp.MustCompile(`(?i)(\d+)\+?\s*years?`)
	anyYearRe    = regexp.MustCompile(`20\d{2}`)
	eduDetailRe  = regexp.MustCompile(`(?i)gpa|coursework|courses`)
	fancyCharsRe = regexp.MustCompile(`[│┤┼╪╫╬═║]`)

	// Quantified-achievement patterns, by metric kind.
	metricRes = map[string]*regexp.Regexp{
		"percentage": regexp.MustCompile(`\d+%`),
		"money":      regexp.MustCompile(`(?i)\$\d+[kmb]?`),
		"numbers":    regexp.MustCompile(`\b\d+\+?\b`),
		"time_saved": regexp.MustCompile(`(?i)\d+\s*(hours?|days?|weeks?|months?)`),
		"team_size":  regexp.MustCompile(`(?i)team\s+of\s+\d+`),
	}

	// Section header patterns; a short line matching one starts that section.
	sectionRes = map[string]*regexp.Regexp{
		"summary":        regexp.MustCompile(`(?i)\b(summary|profile|objective|about\s+me|professional\s+summary)\b`),
		"skills":         regexp.MustCompile(`(?i)\b(skills|technical\s+skills|core\s+skills|competencies|expertise)\b`),
		"experience":     regexp.MustCompile(`(?i)\b(experience|work\s+experience|employment|professional\s+experience)\b`),
		"education":      regexp.MustCompile(`(?i)\b(education|academic|qualifications|degrees)\b`),
		"projects":       regexp.MustCompile(`(?i)\b(projects|portfolio|work\s+samples)\b`),
		"certifications": regexp.MustCompile(`(?i)\b(certifications?|licenses?|credentials)\b`),
		"achievements":   regexp.MustCompile(`(?i)\b(achievements?|awards?|honors?|accomplishments?)\b`),
	}
)

// DetailedScores is the per-category breakdown of the resume score.
type DetailedScores struct {
	FormatStructure    float64 `json:"format_structure"`
	ContactInfo        float64 `json:"contact_info"`
	SkillsMatch        float64 `json:"skills_match"`
	ExperienceQuality  float64 `json:"experience_quality"`
	Education          float64 `json:"education"`
	AchievementsImpact float64 `json:"achievements_impact"`
	ATSOptimization    float64 `json:"ats_optimization"`
}

// SkillFrequency pairs a detected skill with its occurrence count.
type SkillFrequency struct {
	Skill     string `json:"skill"`
	Frequency int    `json:"frequency"`
}

// Report is the full resume analysis result.
type Report struct {
	CandidateName          string           `json:"candidate_name"`
	Role                   string           `json:"role"`
	ATSScore               int              `json:"ats_score"`
	ScoreLabel             string           `json:"score_label"`
	MatchPercentage        float64          `json:"match_percentage"`
	DetailedScores         DetailedScores   `json:"detailed_scores"`
	SkillsFound            []string         `json:"skills_found"`
	TopSkills              []SkillFrequency `json:"top_skills"`
	MissingRequiredSkills  []string         `json:"missing_required_skills"`
	MissingPreferredSkills []string         `json:"missing_preferred_skills"`
	SectionsFound          []string         `json:"sections_found"`
	WordCount              int              `json:"word_count"`
	Strengths              []string         `json:"strengths"`
	Improvements           []string         `json:"improvements"`
	CriticalIssues         []string         `json:"critical_issues"`
}

// Analyzer scores resumes. It is stateless and safe for concurrent use.
type Analyzer struct{}

// NewAnalyzer is the constructor for the Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze scores one resume text against a target role.
//
// Inputs:
//   - text: the extracted plain text of the resume.
//   - candidateName: display name echoed into the report.
//   - role: target role; an unknown role falls back to generic scoring.
//   - experienceYears: the candidate's claimed years of experience, used to
//     cross-check the experience section (may be empty).
//
// Outputs:
//   - *Report: the complete deterministic analysis.
func (a *Analyzer) Analyze(text, candidateName, role, experienceYears string) *Report {
	clean := Clean(text)
	sections := extractSections(clean)
	skills, frequency := extractSkills(clean)
	contacts := extractContacts(clean)

	scores := a.computeScores(clean, skills, sections, contacts, role, experienceYears)
	total := scores.FormatStructure + scores.ContactInfo + scores.SkillsMatch +
		scores.ExperienceQuality + scores.Education + scores.AchievementsImpact +
		scores.ATSOptimization
	atsScore := int(math.Min(math.Round(total), 100))

	report := &Report{
		CandidateName:   orDefault(candidateName, "Candidate"),
		Role:            orDefault(role, "General"),
		ATSScore:        atsScore,
		ScoreLabel:      scoreLabel(atsScore),
		MatchPercentage: float64(atsScore),
		DetailedScores:  scores,
		SkillsFound:     skills,
		TopSkills:       topSkills(frequency, 10),
		SectionsFound:   sortedKeys(sections),
		WordCount:       len(strings.Fields(clean)),
	}

	if profile, ok := roleProfiles[strings.ToLower(role)]; ok {
		found := toSet(skills)
		report.MissingRequiredSkills = missingFrom(profile.MustHave, found)
		report.MissingPreferredSkills = capSlice(missingFrom(profile.GoodToHave, found), 5)
	} else {
		report.MissingRequiredSkills = []string{}
		report.MissingPreferredSkills = []string{}
	}

	a.recommend(report, clean, sections, contacts, role, skills)
	return report
}

// Clean collapses runs of whitespace and lowercases the text; every
// heuristic downstream works on this normalized form.
func Clean(text string) string {
	text = strings.ReplaceAll(text, "\t", " ")
	var b strings.Builder
	b.Grow(len(text))
	prevSpace := false
	for _, r := range text {
		if r == ' ' {
			if prevSpace {
				continue
			}
			prevSpace = true
		} else {
			prevSpace = false
		}
		b.WriteRune(r)
	}
	return strings.ToLower(strings.TrimSpace(b.String()))
}

// extractSections splits the resume into named sections. A line shorter
// than 50 characters matching a header pattern opens a new section;
// everything before the first header lands in "header".
func extractSections(text string) map[string]string {
	sections := make(map[string]string)
	current := "header"
	var content []string

	flush := func() {
		if len(content) > 0 {
			sections[current] = strings.Join(content, "\n")
		}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		matched := false
		if len(line) < 50 {
			for name, re := range sectionRes {
				if re.MatchString(line) {
					flush()
					current = name
					content = nil
					matched = true
					break
				}
			}
		}
		if !matched {
			content = append(content, line)
		}
	}
	flush()
	return sections
}

// extractContacts reports which contact channels the resume exposes.
func extractContacts(text string) map[string]bool {
	return map[string]bool{
		"email":     emailRe.MatchString(text),
		"phone":     phoneRe.MatchString(text),
		"linkedin":  linkedinRe.MatchString(text),
		"github":    githubRe.MatchString(text),
		"portfolio": portfolioRe.MatchString(text),
	}
}

// extractSkills matches the lexicon against the resume. Phrase skills
// (containing spaces or dots) are counted as substrings over token
// boundaries; single-token skills by exact token match.
func extractSkills(text string) ([]string, map[string]int) {
	tokens := Tokenize(text)
	tokenCounts := make(map[string]int, len(tokens))
	for _, t := range tokens {
		tokenCounts[t]++
	}
	padded := " " + text + " "

	found := make([]string, 0)
	frequency := make(map[string]int)
	for _, skill := range skillsLexicon {
		if strings.ContainsAny(skill, " ./+#") {
			if n := strings.Count(padded, skill); n > 0 {
				found = append(found, skill)
				frequency[skill] = n
			}
		} else if n := tokenCounts[skill]; n > 0 {
			found = append(found, skill)
			frequency[skill] = n
		}
	}
	sort.Strings(found)
	return found, frequency
}

// Tokenize splits normalized text into lowercase word tokens.
func Tokenize(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return false
		}
		return true
	})
}

// experienceYears sums the year ranges found in the experience section,
// preferring an explicit "N years" claim when it is larger.
func experienceYearsFound(expText string) int {
	total := 0
	for _, m := range yearRangeRe.FindAllStringSubmatch(expText, -1) {
		start, _ := strconv.Atoi(m[1])
		end := time.Now().Year()
		if !strings.EqualFold(m[2], "present") && !strings.EqualFold(m[2], "current") {
			end, _ = strconv.Atoi(m[2])
		}
		if end > start {
			total += end - start
		}
	}
	if m := explicitYrRe.FindStringSubmatch(expText); m != nil {
		if explicit, err := strconv.Atoi(m[1]); err == nil && explicit > total {
			total = explicit
		}
	}
	return total
}

// countActionVerbs counts distinct strong verbs (including inflections)
// present anywhere in the text.
func countActionVerbs(text string) int {
	count := 0
	for _, verb := range actionVerbs {
		if strings.Contains(text, verb) {
			count++
		}
	}
	return count
}

// countQuantifiedMetrics totals the quantified-achievement matches across
// every metric pattern.
func countQuantifiedMetrics(text string) int {
	total := 0
	for _, re := range metricRes {
		total += len(re.FindAllString(text, -1))
	}
	return total
}

// computeScores fills the per-category breakdown.
func (a *Analyzer) computeScores(
	text string,
	skills []string,
	sections map[string]string,
	contacts map[string]bool,
	role, claimedExperience string,
) DetailedScores {
	var scores DetailedScores
	found := toSet(skills)
	roleLower := strings.ToLower(role)
	profile, hasProfile := roleProfiles[roleLower]

	// Format and structure: the three core sections plus an opener.
	for _, required := range []string{"experience", "education", "skills"} {
		if _, ok := sections[required]; ok {
			scores.FormatStructure += 4
		}
	}
	scores.FormatStructure = math.Min(scores.FormatStructure, 12)
	if _, ok := sections["summary"]; ok {
		scores.FormatStructure += 3
	} else if _, ok := sections["header"]; ok {
		scores.FormatStructure += 3
	}
	scores.FormatStructure = math.Min(scores.FormatStructure, maxFormatScore)

	// Contact information: email and phone weigh heavier than links.
	for channel, present := range contacts {
		if !present {
			continue
		}
		if channel == "email" || channel == "phone" {
			scores.ContactInfo += 2
		} else {
			scores.ContactInfo += 0.5
		}
	}
	scores.ContactInfo = math.Min(scores.ContactInfo, maxContactScore)

	// Skills match: weighted against the role profile when one exists.
	if hasProfile {
		mustFound := 0
		for _, s := range profile.MustHave {
			if found[s] {
				mustFound++
			}
		}
		goodFound := 0
		for _, s := range profile.GoodToHave {
			if found[s] {
				goodFound++
			}
		}
		scores.SkillsMatch = math.Min(float64(mustFound)*2.5+float64(goodFound), maxSkillsScore)
	} else {
		scores.SkillsMatch = math.Min(float64(len(skills))*2, maxSkillsScore)
	}

	// Experience quality: consistency, detail, verbs, role keywords.
	if expText, ok := sections["experience"]; ok {
		years := experienceYearsFound(expText)
		if consistentWithClaim(years, claimedExperience) {
			scores.ExperienceQuality += 5
		} else if years > 0 {
			scores.ExperienceQuality += 3
		}

		switch {
		case len(strings.Split(expText, "\n")) > 5:
			scores.ExperienceQuality += 5
		case len(expText) > 100:
			scores.ExperienceQuality += 3
		}

		scores.ExperienceQuality += math.Min(float64(countActionVerbs(expText))*0.5, 5)

		if hasProfile {
			matches := 0
			for _, keyword := range profile.Keywords {
				if strings.Contains(expText, keyword) {
					matches++
				}
			}
			scores.ExperienceQuality += math.Min(float64(matches)*0.8, 5)
		}
		scores.ExperienceQuality = math.Min(scores.ExperienceQuality, maxExperienceScore)
	}

	// Education: degree, graduation year, detail.
	if eduText, ok := sections["education"]; ok {
		for _, degree := range []string{"bachelor", "master", "phd", "b.tech", "m.tech", "b.s", "m.s", "degree"} {
			if strings.Contains(eduText, degree) {
				scores.Education += 5
				break
			}
		}
		if anyYearRe.MatchString(eduText) {
			scores.Education += 3
		}
		if eduDetailRe.MatchString(eduText) {
			scores.Education += 2
		}
		scores.Education = math.Min(scores.Education, maxEducationScore)
	}

	// Achievements and impact: quantified metrics plus impact verbs.
	quantified := countQuantifiedMetrics(text)
	if quantified > 3 {
		scores.AchievementsImpact += 8
	} else {
		scores.AchievementsImpact += math.Min(float64(quantified)*1.5, 5)
	}
	impactCount := 0
	for _, verb := range impactVerbs {
		if strings.Contains(text, verb) {
			impactCount++
		}
	}
	scores.AchievementsImpact += math.Min(float64(impactCount), 7)
	scores.AchievementsImpact = math.Min(scores.AchievementsImpact, maxAchievementScore)

	// ATS optimization: plain formatting, standard sections, sane length.
	hasStandardSections := scores.FormatStructure >= 12
	if hasStandardSections {
		scores.ATSOptimization += 3
	}
	if !fancyCharsRe.MatchString(text) {
		scores.ATSOptimization += 2
	}
	if strings.Contains(text, "@") {
		scores.ATSOptimization += 2
	}
	wordCount := len(strings.Fields(text))
	if wordCount > 300 && wordCount < 1500 {
		scores.ATSOptimization += 3
	} else {
		scores.ATSOptimization += 1
	}
	scores.ATSOptimization = math.Min(scores.ATSOptimization, maxATSScore)

	return scores
}

// recommend fills the strengths / improvements / critical issues lists from
// the computed breakdown.
func (a *Analyzer) recommend(
	report *Report,
	text string,
	sections map[string]string,
	contacts map[string]bool,
	role string,
	skills []string,
) {
	scores := report.DetailedScores
	strengths := []string{}
	improvements := []string{}
	critical := []string{}

	contactCount := 0
	for _, present := range contacts {
		if present {
			contactCount++
		}
	}
	if contactCount >= 3 {
		strengths = append(strengths, "Complete contact information with professional links")
	} else if !contacts["email"] {
		critical = append(critical, "Missing email address - this is critical for ATS systems")
	}

	if scores.FormatStructure >= 12 {
		strengths = append(strengths, "Well-organized resume with clear section headers")
	} else if scores.FormatStructure < 8 {
		critical = append(critical, "Missing key sections - add Summary, Skills, Experience, and Education")
	}

	roleLower := strings.ToLower(role)
	if profile, ok := roleProfiles[roleLower]; ok {
		found := toSet(skills)
		missingMust := missingFrom(profile.MustHave, found)
		missingGood := missingFrom(profile.GoodToHave, found)

		if scores.SkillsMatch >= 20 {
			strengths = append(strengths, fmt.Sprintf("Excellent technical skills alignment for %s", role))
		} else if scores.SkillsMatch >= 15 {
			strengths = append(strengths, fmt.Sprintf("Good technical skills for %s", role))
		}
		if len(missingMust) > 0 {
			critical = append(critical, "Missing critical skills: "+strings.Join(capSlice(missingMust, 3), ", "))
		}
		if len(missingGood) > 3 {
			improvements = append(improvements, "Consider adding: "+strings.Join(capSlice(missingGood, 4), ", "))
		}
	}

	if scores.ExperienceQuality >= 15 {
		strengths = append(strengths, "Strong experience section with action verbs and details")
	} else {
		if scores.ExperienceQuality < 10 {
			critical = append(critical, "Experience section lacks detail and impact")
		}
		improvements = append(improvements, "Start bullet points with strong action verbs (led, developed, improved)")
	}

	if countQuantifiedMetrics(text) > 3 {
		strengths = append(strengths, "Quantified achievements with measurable impact")
	} else {
		improvements = append(improvements, "Add metrics to show impact (e.g. 'Increased efficiency by 30%', 'Managed team of 5')")
	}

	if scores.Education >= 7 {
		strengths = append(strengths, "Clear education credentials")
	} else if scores.Education < 5 {
		improvements = append(improvements, "Add graduation years and relevant coursework to education")
	}

	if scores.ATSOptimization >= 8 {
		strengths = append(strengths, "ATS-friendly formatting and structure")
	} else {
		improvements = append(improvements, "Use standard section headers and avoid complex tables or graphics")
	}

	if countActionVerbs(text) < 5 {
		improvements = append(improvements, "Use more action verbs throughout your resume (achieved, developed, led)")
	}

	switch wordCount := report.WordCount; {
	case wordCount < 300:
		critical = append(critical, "Resume is too short - aim for 400-600 words for better ATS scores")
	case wordCount > 1500:
		improvements = append(improvements, "Consider condensing content to 1-2 pages for better readability")
	}

	report.Strengths = strengths
	report.Improvements = improvements
	report.CriticalIssues = critical
}

// consistentWithClaim checks the resume's computed years against the
// candidate's claim; an empty claim is always consistent.
func consistentWithClaim(years int, claim string) bool {
	if claim == "" {
		return true
	}
	claimed, err := strconv.ParseFloat(claim, 64)
	if err != nil {
		return true
	}
	return math.Abs(float64(years)-claimed) <= 1
}

func scoreLabel(score int) string {
	switch {
	case score >= 80:
		return "Excellent"
	case score >= 60:
		return "Good"
	case score >= 40:
		return "Fair"
	default:
		return "Needs Improvement"
	}
}

func topSkills(frequency map[string]int, limit int) []SkillFrequency {
	out := make([]SkillFrequency, 0, len(frequency))
	for skill, count := range frequency {
		out = append(out, SkillFrequency{Skill: skill, Frequency: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Frequency != out[j].Frequency {
			return out[i].Frequency > out[j].Frequency
		}
		return out[i].Skill < out[j].Skill
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}

func missingFrom(wanted []string, found map[string]bool) []string {
	missing := []string{}
	for _, skill := range wanted {
		if !found[skill] {
			missing = append(missing, skill)
		}
	}
	return missing
}

func capSlice(items []string, limit int) []string {
	if len(items) > limit {
		return items[:limit]
	}
	return items
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
