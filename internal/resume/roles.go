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

import "sort"

// RoleProfile describes what a target role expects from a resume: skills
// split by weight, domain keywords rewarded in the experience section, and
// the action verbs typical for the role.
type RoleProfile struct {
	MustHave    []string
	GoodToHave  []string
	Keywords    []string
	ActionVerbs []string
}

// roleProfiles maps a lowercased role name to its expectations. Roles not
// listed here fall back to generic skill counting.
var roleProfiles = map[string]RoleProfile{
	"software engineer": {
		MustHave:    []string{"git", "python", "java", "javascript", "sql", "api", "testing"},
		GoodToHave:  []string{"react", "node.js", "docker", "kubernetes", "aws", "azure", "ci/cd", "agile"},
		Keywords:    []string{"api", "backend", "frontend", "full-stack", "microservices", "testing", "deployment", "scalability"},
		ActionVerbs: []string{"developed", "implemented", "built", "designed", "architected", "optimized", "deployed"},
	},
	"data analyst": {
		MustHave:    []string{"sql", "excel", "python", "statistics", "data analysis"},
		GoodToHave:  []string{"tableau", "power bi", "r", "pandas", "visualization", "looker", "dashboards"},
		Keywords:    []string{"analysis", "reporting", "metrics", "dashboard", "forecasting", "insights", "data-driven"},
		ActionVerbs: []string{"analyzed", "reported", "forecasted", "visualized", "investigated", "identified"},
	},
	"machine learning engineer": {
		MustHave:    []string{"python", "tensorflow", "pytorch", "scikit-learn", "machine learning"},
		GoodToHave:  []string{"deep learning", "nlp", "computer vision", "mlops", "spark", "aws", "model deployment"},
		Keywords:    []string{"model", "training", "accuracy", "neural network", "pipeline", "feature engineering", "optimization"},
		ActionVerbs: []string{"trained", "optimized", "deployed", "researched", "experimented", "validated"},
	},
	"frontend developer": {
		MustHave:    []string{"javascript", "html", "css", "react", "responsive design"},
		GoodToHave:  []string{"typescript", "tailwind", "vue", "angular", "webpack", "next.js"},
		Keywords:    []string{"ui", "ux", "component", "state management", "performance", "accessibility"},
		ActionVerbs: []string{"designed", "implemented", "optimized", "created", "enhanced"},
	},
	"backend developer": {
		MustHave:    []string{"python", "java", "node.js", "sql", "api", "rest"},
		GoodToHave:  []string{"microservices", "docker", "mongodb", "redis", "graphql", "kafka"},
		Keywords:    []string{"api", "database", "server", "scalability", "architecture", "performance"},
		ActionVerbs: []string{"architected", "built", "scaled", "optimized", "integrated"},
	},
	"devops engineer": {
		MustHave:    []string{"docker", "kubernetes", "ci/cd", "linux", "git", "aws"},
		GoodToHave:  []string{"terraform", "ansible", "jenkins", "monitoring", "azure", "gcp"},
		Keywords:    []string{"automation", "deployment", "infrastructure", "monitoring", "orchestration"},
		ActionVerbs: []string{"automated", "deployed", "configured", "monitored", "optimized"},
	},
}

// SupportedRoles lists the role names with a dedicated profile, sorted for
// stable output on the roles endpoint.
func SupportedRoles() []string {
	roles := make([]string, 0, len(roleProfiles))
	for role := range roleProfiles {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	return roles
}

// actionVerbs are the generic strong verbs rewarded anywhere in the resume.
var actionVerbs = []string{
	"achieved", "improved", "trained", "mentored", "created", "designed", "developed",
	"implemented", "reduced", "increased", "launched", "led", "managed", "optimized",
	"resolved", "streamlined", "automated", "built", "delivered", "enhanced", "executed",
	"founded", "generated", "innovated", "pioneered", "scaled", "spearheaded", "transformed",
}

// impactVerbs are the subset that specifically signals measurable impact in
// the achievements scoring.
var impactVerbs = []string{
	"increased", "decreased", "improved", "reduced", "achieved", "exceeded",
}

// skillsLexicon is the generic skill vocabulary matched against resumes
// when the role has no dedicated profile (and to surface found skills for
// any role). Multi-token and dotted entries are matched as phrases, the
// rest as whole tokens.
var skillsLexicon = []string{
	"python", "java", "javascript", "typescript", "go", "c++", "c#", "rust", "ruby",
	"php", "swift", "kotlin", "scala", "r", "sql", "nosql", "html", "css",
	"react", "angular", "vue", "next.js", "node.js", "express", "django", "flask",
	"spring", "rails", ".net", "graphql", "rest", "grpc", "api",
	"docker", "kubernetes", "terraform", "ansible", "jenkins", "ci/cd", "git", "linux",
	"aws", "azure", "gcp", "firebase", "heroku",
	"postgresql", "mysql", "mongodb", "redis", "elasticsearch", "kafka", "rabbitmq",
	"spark", "hadoop", "airflow", "pandas", "numpy", "scikit-learn", "tensorflow",
	"pytorch", "keras", "machine learning", "deep learning", "nlp", "computer vision",
	"data analysis", "statistics", "excel", "tableau", "power bi", "looker",
	"visualization", "dashboards", "mlops", "model deployment",
	"agile", "scrum", "testing", "tdd", "microservices", "responsive design",
	"tailwind", "webpack", "accessibility",
}
