package project

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Image is a reference to an object held by the media store.
type Image struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type Project struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	GitRepoLink  string    `json:"gitRepoLink"`
	ProjectLink  string    `json:"projectLink"`
	Stack        string    `json:"stack"`
	Technologies string    `json:"technologies"`
	Deployed     string    `json:"deployed"`
	Banner       Image     `json:"banner"`
	Gallery      []Image   `json:"gallery"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Fields are the descriptive attributes required to create a project.
type Fields struct {
	Title        string
	Description  string
	GitRepoLink  string
	ProjectLink  string
	Stack        string
	Technologies string
	Deployed     string
}

// Missing returns the form names of the fields that are blank, in declaration order.
func (f Fields) Missing() []string {
	var missing []string
	for _, fv := range f.named() {
		if strings.TrimSpace(fv.value) == "" {
			missing = append(missing, fv.name)
		}
	}
	return missing
}

type namedValue struct {
	name  string
	value string
}

func (f Fields) named() []namedValue {
	return []namedValue{
		{"title", f.Title},
		{"description", f.Description},
		{"gitRepoLink", f.GitRepoLink},
		{"projectLink", f.ProjectLink},
		{"stack", f.Stack},
		{"technologies", f.Technologies},
		{"deployed", f.Deployed},
	}
}

// Patch lists the changes an update applies. A nil field is left untouched;
// Gallery, when non-nil, replaces the stored gallery wholesale.
type Patch struct {
	Title        *string
	Description  *string
	GitRepoLink  *string
	ProjectLink  *string
	Stack        *string
	Technologies *string
	Deployed     *string
	Banner       *Image
	Gallery      []Image
}

// Blank returns the form names of supplied fields whose value is blank.
func (p Patch) Blank() []string {
	var blank []string
	for _, fv := range []struct {
		name  string
		value *string
	}{
		{"title", p.Title},
		{"description", p.Description},
		{"gitRepoLink", p.GitRepoLink},
		{"projectLink", p.ProjectLink},
		{"stack", p.Stack},
		{"technologies", p.Technologies},
		{"deployed", p.Deployed},
	} {
		if fv.value != nil && strings.TrimSpace(*fv.value) == "" {
			blank = append(blank, fv.name)
		}
	}
	return blank
}

// New builds an unsaved project from its descriptive fields and uploaded images.
func New(f Fields, banner Image, gallery []Image) Project {
	if gallery == nil {
		gallery = []Image{}
	}
	now := time.Now().UTC()
	return Project{
		ID:           uuid.New(),
		Title:        f.Title,
		Description:  f.Description,
		GitRepoLink:  f.GitRepoLink,
		ProjectLink:  f.ProjectLink,
		Stack:        f.Stack,
		Technologies: f.Technologies,
		Deployed:     f.Deployed,
		Banner:       banner,
		Gallery:      gallery,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
