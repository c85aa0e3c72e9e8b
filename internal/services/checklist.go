package services

import (
	"regexp"
	"strings"

	"alfredoptarigan/resume-analyzer/internal/models"
)

type checklistRule struct {
	Label   string
	Pattern *regexp.Regexp
}

func anyTerm(terms ...string) *regexp.Regexp {
	quoted := make([]string, len(terms))
	for i, term := range terms {
		quoted[i] = regexp.QuoteMeta(term)
	}
	return regexp.MustCompile(strings.Join(quoted, "|"))
}

// presenceChecklist is evaluated in order; the output order follows it.
var presenceChecklist = []checklistRule{
	{
		Label: "Standard Section Headings",
		Pattern: anyTerm("experience", "education", "skills", "summary", "objective",
			"work history", "professional experience", "employment"),
	},
	{
		Label:   "Contact Information",
		Pattern: anyTerm("email", "phone", "linkedin", "github", "portfolio", "@", ".com", ".net", ".org"),
	},
	{
		Label: "Keywords & Skills",
		Pattern: anyTerm("skills", "technologies", "tech skills", "competencies", "programming",
			"software", "tools", "javascript", "python", "java", "react", "node", "sql", "html",
			"css", "aws", "docker", "kubernetes", "agile", "scrum", "git", "api", "database",
			"framework", "library", "language", "technology", "stack"),
	},
	{
		Label: "Quantified Achievements",
		Pattern: regexp.MustCompile(`\d+%|\d+ percent|\d+ people|\d+ team|\d+ project|\d+ year|` +
			`\d+ month|\d+ dollar|\$\d+|\d+ users|\d+ customers|\d+ revenue|\d+ growth|` +
			`\d+ improvement|\d+ reduction|\d+ increase|\d+ decrease`),
	},
	{
		Label: "Action Verbs",
		Pattern: anyTerm("developed", "created", "implemented", "managed", "led", "designed",
			"built", "improved", "increased", "decreased", "achieved", "delivered", "launched",
			"optimized", "streamlined", "enhanced"),
	},
	{
		Label: "Professional Experience",
		Pattern: anyTerm("experience", "employment", "work history", "professional experience",
			"job", "position", "role", "career", "responsibilities", "duties", "tasks",
			"projects", "achievements"),
	},
	{
		Label: "Education Section",
		Pattern: anyTerm("education", "bachelor", "master", "phd", "university", "degree",
			"college", "school", "academic", "certification", "certificate", "diploma"),
	},
}

// EvaluateChecklist runs the presence heuristics over text. It always
// returns one item per rule, in rule order.
func EvaluateChecklist(text string) []models.ChecklistItem {
	hay := strings.ToLower(text)

	items := make([]models.ChecklistItem, len(presenceChecklist))
	for i, rule := range presenceChecklist {
		items[i] = models.ChecklistItem{
			Label:   rule.Label,
			Present: rule.Pattern.MatchString(hay),
		}
	}
	return items
}

// ChecklistLabels lists the checklist labels in evaluation order.
func ChecklistLabels() []string {
	labels := make([]string, len(presenceChecklist))
	for i, rule := range presenceChecklist {
		labels[i] = rule.Label
	}
	return labels
}
