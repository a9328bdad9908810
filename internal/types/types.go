// Package types holds the caller-supplied input model shared across the
// generation pipeline. These are explicit structs, never open-ended maps.
package types

// PersonalInfo is the user's profile data used for prompting and scoring.
type PersonalInfo struct {
	Name        string   `json:"name"`
	Title       string   `json:"title"`
	Bio         string   `json:"bio"`
	Skills      []string `json:"skills"`
	SocialLinks []string `json:"social_links"`
}

// ProjectImage is one stored image slot of a project.
type ProjectImage struct {
	URL   string `json:"url"`
	Index int    `json:"index"`
}

// Project is one portfolio entry with its uploaded assets.
type Project struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Overview      string         `json:"overview"`
	Tags          []string       `json:"tags"`
	FinalImages   []ProjectImage `json:"final_images"`
	ProcessImages []ProjectImage `json:"process_images"`
}

// ReferenceImage is an aesthetic reference uploaded by the caller.
// Data is the raw encoded image; it is analyzed, never re-encoded.
type ReferenceImage struct {
	Filename string `json:"filename"`
	MIMEType string `json:"mime_type"`
	Data     []byte `json:"-"`
}

// GenerateOptions are caller-selected design preferences.
type GenerateOptions struct {
	LayoutPreset  string `json:"layout_preset"`  // empty or "default" = no preference
	DesignRequest string `json:"design_request"` // free-text
}

// UserData bundles everything one generation request starts from.
type UserData struct {
	Personal        PersonalInfo     `json:"personal"`
	Projects        []Project        `json:"projects"`
	ReferenceImages []ReferenceImage `json:"reference_images"`
	Options         GenerateOptions  `json:"options"`
}

// HasDesignInput reports whether the caller provided any strong design signal
// (reference image, non-default layout preset, or a free-text request).
func (u *UserData) HasDesignInput() bool {
	if len(u.ReferenceImages) > 0 {
		return true
	}
	if u.Options.LayoutPreset != "" && u.Options.LayoutPreset != "default" {
		return true
	}
	return u.Options.DesignRequest != ""
}
