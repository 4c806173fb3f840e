package entity

type PortfolioItem struct {
	Id           int      `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Image        string   `json:"image"`
	Technologies []string `json:"technologies"`
}

// SkillCategory keeps skills grouped under a heading. Categories are kept in
// a slice so rendering order is stable.
type SkillCategory struct {
	Name   string   `json:"name"`
	Skills []string `json:"skills"`
}

type Service struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}
