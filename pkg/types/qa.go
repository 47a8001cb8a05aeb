// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// CategoryID is the tag stored in a QAItem's category field.
type CategoryID string

const (
	CategoryApplication CategoryID = "application"
	CategoryPortfolio   CategoryID = "portfolio"
	CategoryMajor       CategoryID = "major"
	CategoryGrade       CategoryID = "grade"
	CategoryAdvising    CategoryID = "advising"
	CategoryProject     CategoryID = "project"

	// CategoryGeneral is the residual bucket used by reports. It never
	// appears in the dataset file.
	CategoryGeneral CategoryID = "general"
)

// Category is one entry of the fixed category enumeration.
type Category struct {
	ID          CategoryID `json:"id" yaml:"id"`
	Name        string     `json:"name" yaml:"name"`
	Icon        string     `json:"icon" yaml:"icon"`
	Description string     `json:"description" yaml:"description"`
}

// Categories returns the six dataset categories in priority order.
func Categories() []Category {
	return []Category{
		{ID: CategoryApplication, Name: "Application & Admission", Icon: "📝", Description: "Questions about applying to the design major"},
		{ID: CategoryPortfolio, Name: "Portfolio", Icon: "🎨", Description: "Portfolio requirements and tips"},
		{ID: CategoryMajor, Name: "Major Selection", Icon: "🎓", Description: "Choosing between VCD, IxD, and ID"},
		{ID: CategoryGrade, Name: "Grades & Requirements", Icon: "📊", Description: "GPA requirements and grading policies"},
		{ID: CategoryAdvising, Name: "Academic Advising", Icon: "💬", Description: "Academic planning and advising resources"},
		{ID: CategoryProject, Name: "Projects & Assignments", Icon: "✏️", Description: "Course projects and deliverables"},
	}
}

// IsDatasetCategory reports whether id belongs to the fixed enumeration.
func IsDatasetCategory(id CategoryID) bool {
	for _, c := range Categories() {
		if c.ID == id {
			return true
		}
	}
	return false
}

// DisplayName returns the human label for id. Unknown ids fall back to
// the raw tag.
func DisplayName(id CategoryID) string {
	if id == CategoryGeneral {
		return "General/Other"
	}
	for _, c := range Categories() {
		if c.ID == id {
			return c.Name
		}
	}
	return string(id)
}

// QAItem is one question/answer record. ID is assigned on emission and is
// not stable across regenerations.
type QAItem struct {
	ID       int        `json:"id" yaml:"id"`
	Category CategoryID `json:"category" yaml:"category"`
	Question string     `json:"question" yaml:"question"`
	Answer   string     `json:"answer" yaml:"answer"`

	// Links holds absolute URLs harvested from the answer, in source order.
	Links []string `json:"links,omitempty" yaml:"links,omitempty"`

	// Date is carried through from existing dataset files untouched.
	Date string `json:"date,omitempty" yaml:"date,omitempty"`

	Keywords []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
}
