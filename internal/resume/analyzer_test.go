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

package resume

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var strongResume = `
Jane Candidate
jane@example.com | 555-123-4567 | linkedin.com/in/janecandidate | github.com/janecandidate

Summary
Software engineer with a track record of shipping reliable backend systems.

Skills
Python, Java, JavaScript, SQL, Git, Docker, Kubernetes, AWS, REST API, testing

Experience
Senior Software Engineer, Acme Corp, 2019 - present
Developed and deployed backend microservices handling 2M requests per day.
Implemented CI/CD pipelines that reduced deployment time by 40%.
Led a team of 5 engineers and mentored junior developers.
Optimized database queries, improved API latency by 30%.
Built automated testing infrastructure increasing coverage to 90%.

Education
Bachelor of Science in Computer Science, State University, 2015 - 2019
GPA 3.8, coursework in distributed systems and databases.

Achievements
Achieved 99.9% uptime across all owned services for 2 years.
` + strings.Repeat("Delivered measurable improvements across projects and systems. ", 40)

func TestAnalyzeStrongResumeScoresHigh(t *testing.T) {
	report := NewAnalyzer().Analyze(strongResume, "Jane", "software engineer", "5")

	assert.GreaterOrEqual(t, report.ATSScore, 70)
	assert.LessOrEqual(t, report.ATSScore, 100)
	assert.Contains(t, []string{"Excellent", "Good"}, report.ScoreLabel)
	assert.Contains(t, report.SkillsFound, "python")
	assert.Contains(t, report.SkillsFound, "docker")
	assert.Contains(t, report.SectionsFound, "experience")
	assert.Contains(t, report.SectionsFound, "education")
	assert.Contains(t, report.SectionsFound, "skills")
	assert.NotEmpty(t, report.Strengths)
}

func TestAnalyzeWeakResume(t *testing.T) {
	report := NewAnalyzer().Analyze(
		"worked at a company doing various things for some time", "", "", "")

	assert.Less(t, report.ATSScore, 40)
	assert.Equal(t, "Needs Improvement", report.ScoreLabel)
	assert.Equal(t, "Candidate", report.CandidateName)
	assert.Equal(t, "General", report.Role)
	assert.NotEmpty(t, report.CriticalIssues)
}

func TestAnalyzeUnknownRoleFallsBackToGenericSkills(t *testing.T) {
	report := NewAnalyzer().Analyze(strongResume, "Jane", "astronaut", "")

	assert.Empty(t, report.MissingRequiredSkills)
	assert.Greater(t, report.DetailedScores.SkillsMatch, 0.0)
}

func TestAnalyzeReportsMissingRequiredSkills(t *testing.T) {
	text := `
jane@example.com
Skills
Python and SQL only.
Experience
Built things from 2020 - 2022.
Education
Bachelor degree, 2020.
`
	report := NewAnalyzer().Analyze(text, "", "software engineer", "")

	require.NotEmpty(t, report.MissingRequiredSkills)
	assert.Contains(t, report.MissingRequiredSkills, "git")
	assert.NotContains(t, report.MissingRequiredSkills, "python")
}

func TestAnalyzeDeterministic(t *testing.T) {
	analyzer := NewAnalyzer()
	first := analyzer.Analyze(strongResume, "Jane", "software engineer", "5")
	second := analyzer.Analyze(strongResume, "Jane", "software engineer", "5")
	assert.Equal(t, first, second)
}

func TestExtractSectionsSplitsOnHeaders(t *testing.T) {
	sections := extractSections(Clean("intro line\nSkills\npython, go\nEducation\nsome degree"))

	assert.Contains(t, sections, "header")
	assert.Contains(t, sections, "skills")
	assert.Contains(t, sections, "education")
	assert.Equal(t, "python, go", sections["skills"])
}

func TestExtractContacts(t *testing.T) {
	contacts := extractContacts("reach me at jane@example.com or 555-123-4567")

	assert.True(t, contacts["email"])
	assert.True(t, contacts["phone"])
	assert.False(t, contacts["linkedin"])
}

func TestExperienceYearsFound(t *testing.T) {
	assert.Equal(t, 3, experienceYearsFound("engineer from 2019 - 2022"))
	// An explicit larger claim wins over the summed ranges.
	assert.Equal(t, 7, experienceYearsFound("7 years of experience, 2020 - 2021"))
}

func TestScoreLabelBands(t *testing.T) {
	assert.Equal(t, "Excellent", scoreLabel(80))
	assert.Equal(t, "Good", scoreLabel(60))
	assert.Equal(t, "Fair", scoreLabel(40))
	assert.Equal(t, "Needs Improvement", scoreLabel(39))
}

func TestSupportedRolesSorted(t *testing.T) {
	roles := SupportedRoles()
	require.NotEmpty(t, roles)
	assert.IsNonDecreasing(t, roles)
	assert.Contains(t, roles, "software engineer")
}
