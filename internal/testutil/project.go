package testutil

import domainproject "github.com/alanyang/folio/internal/domain/project"

// ApplyPatch returns p with patch applied the way the repository writes it:
// nil fields are left untouched and a non-nil gallery replaces the stored one.
// UpdatedAt is not touched.
func ApplyPatch(p domainproject.Project, patch domainproject.Patch) domainproject.Project {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&p.Title, patch.Title)
	set(&p.Description, patch.Description)
	set(&p.GitRepoLink, patch.GitRepoLink)
	set(&p.ProjectLink, patch.ProjectLink)
	set(&p.Stack, patch.Stack)
	set(&p.Technologies, patch.Technologies)
	set(&p.Deployed, patch.Deployed)
	if patch.Banner != nil {
		p.Banner = *patch.Banner
	}
	if patch.Gallery != nil {
		p.Gallery = append([]domainproject.Image(nil), patch.Gallery...)
	}
	return p
}
