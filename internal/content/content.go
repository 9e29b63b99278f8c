// Package content holds the copy and fixed display lists of the site. Every
// list is an ordered sequence of plain records that templates iterate as-is.
package content

import (
	"html/template"

	"gopkg.in/yaml.v3"

	"cawver-web/pkg/navigation"
)

type Site struct {
	Brand      Brand         `yaml:"brand"`
	Navigation []Link        `yaml:"navigation" validate:"required,min=1,dive"`
	Footer     Footer        `yaml:"footer"`
	Home       HomePage      `yaml:"home"`
	Thesis     ThesisPage    `yaml:"thesis"`
	Portfolio  PortfolioPage `yaml:"portfolio"`
	Pitch      PitchPage     `yaml:"pitch"`
	Garage     GaragePage    `yaml:"garage"`
	Apply      ApplyPage     `yaml:"apply"`
}

type Brand struct {
	Name   string `yaml:"name" validate:"required,no_html"`
	Credit string `yaml:"credit"`
}

type Link struct {
	Label    string `yaml:"label" validate:"required,no_html"`
	Path     string `yaml:"path" validate:"required,route_path"`
	Emphasis bool   `yaml:"emphasis"`
}

type Footer struct {
	Links     []Link `yaml:"links" validate:"dive"`
	Copyright string `yaml:"copyright" validate:"required"`
}

// Intro is the eyebrow, headline and lead paragraph every page opens with.
type Intro struct {
	Eyebrow string `yaml:"eyebrow"`
	Title   string `yaml:"title" validate:"required"`
	Lead    string `yaml:"lead"`
}

type CTA struct {
	Label string `yaml:"label" validate:"required"`
	Path  string `yaml:"path" validate:"required,route_path"`
}

type Card struct {
	Icon  string `yaml:"icon"`
	Title string `yaml:"title" validate:"required"`
	Text  string `yaml:"text"`
}

type FocusArea struct {
	Name    string `yaml:"name" validate:"required"`
	Icon    string `yaml:"icon"`
	Summary string `yaml:"summary"`
	Cards   []Card `yaml:"cards" validate:"dive"`
}

type Stat struct {
	Value string `yaml:"value" validate:"required"`
	Label string `yaml:"label" validate:"required"`
}

type Banner struct {
	Title  string `yaml:"title" validate:"required"`
	Text   string `yaml:"text"`
	Button CTA    `yaml:"button"`
}

type HomePage struct {
	Hero struct {
		Title     string `yaml:"title" validate:"required"`
		Highlight string `yaml:"highlight"`
		Lead      string `yaml:"lead"`
		Primary   CTA    `yaml:"primary"`
		Secondary CTA    `yaml:"secondary"`
	} `yaml:"hero"`
	Focus struct {
		Intro `yaml:",inline"`
		Areas []FocusArea `yaml:"areas" validate:"dive"`
	} `yaml:"focus"`
	Stats []Stat `yaml:"stats" validate:"dive"`
	CTA   Banner `yaml:"cta"`
}

type ThesisPage struct {
	Intro         `yaml:",inline"`
	CriteriaTitle string `yaml:"criteria_title"`
	Criteria      []Card `yaml:"criteria" validate:"dive"`
	ApproachTitle string `yaml:"approach_title"`
	Approach      Prose  `yaml:"approach"`
	Button        CTA    `yaml:"button"`
}

type Company struct {
	Name    string `yaml:"name" validate:"required"`
	Sector  string `yaml:"sector"`
	Summary string `yaml:"summary"`
	URL     string `yaml:"url" validate:"omitempty,url"`
}

type PortfolioPage struct {
	Intro     `yaml:",inline"`
	Companies []Company `yaml:"companies" validate:"dive"`
	Empty     Card      `yaml:"empty"`
	Invite    string    `yaml:"invite"`
	Button    CTA       `yaml:"button"`
}

type PitchPage struct {
	Intro          `yaml:",inline"`
	Email          string `yaml:"email" validate:"required,email"`
	DeckTitle      string `yaml:"deck_title"`
	DeckText       string `yaml:"deck_text"`
	ChecklistTitle string `yaml:"checklist_title"`
	Checklist      []Card `yaml:"checklist" validate:"dive"`
	ResponseNote   string `yaml:"response_note"`
}

type Stage struct {
	Name     string `yaml:"name" validate:"required"`
	Duration string `yaml:"duration"`
	Summary  string `yaml:"summary"`
}

type GaragePage struct {
	Intro         `yaml:",inline"`
	About         Prose   `yaml:"about"`
	StagesTitle   string  `yaml:"stages_title"`
	Stages        []Stage `yaml:"stages" validate:"dive"`
	TimelineTitle string  `yaml:"timeline_title"`
	Timeline      []Card  `yaml:"timeline" validate:"dive"`
	Button        CTA     `yaml:"button"`
}

type ApplyPage struct {
	Intro       `yaml:",inline"`
	Email       string  `yaml:"email" validate:"required,email"`
	Subject     string  `yaml:"subject"`
	StagesTitle string  `yaml:"stages_title"`
	Stages      []Stage `yaml:"stages" validate:"dive"`
	Note        string  `yaml:"note"`
}

// Prose is a markdown block. Source is what the content file holds and HTML
// is filled in by Parse with the rendered, sanitized markup.
type Prose struct {
	Source string
	HTML   template.HTML
}

func (p *Prose) UnmarshalYAML(node *yaml.Node) error {
	return node.Decode(&p.Source)
}

// NavigationItems converts the configured nav links for a navigation.Bar.
func (s *Site) NavigationItems() []navigation.Item {
	return toItems(s.Navigation)
}

func (s *Site) FooterItems() []navigation.Item {
	return toItems(s.Footer.Links)
}

func toItems(links []Link) []navigation.Item {
	items := make([]navigation.Item, 0, len(links))
	for _, link := range links {
		items = append(items, navigation.Item{
			Label:    link.Label,
			Path:     link.Path,
			Emphasis: link.Emphasis,
		})
	}
	return items
}
