package memory

import (
	"slices"

	"portfolio-web/internal/entity"
)

var projects = []entity.PortfolioItem{
	{
		Id:           1,
		Title:        "E-Commerce Platform",
		Description:  "A full-stack e-commerce platform with payment integration",
		Image:        "project1.jpg",
		Technologies: []string{"Python", "Flask", "PostgreSQL", "Stripe"},
	},
	{
		Id:           2,
		Title:        "Social Media Dashboard",
		Description:  "Real-time analytics dashboard for social media management",
		Image:        "project2.jpg",
		Technologies: []string{"React", "Node.js", "MongoDB", "Chart.js"},
	},
	{
		Id:           3,
		Title:        "Task Management App",
		Description:  "Collaborative task management application with real-time updates",
		Image:        "project3.jpg",
		Technologies: []string{"Vue.js", "Django", "Redis", "PostgreSQL"},
	},
}

var skills = []entity.SkillCategory{
	{Name: "Backend", Skills: []string{"Python", "Flask", "Django", "Node.js", "SQL"}},
	{Name: "Frontend", Skills: []string{"HTML5", "CSS3", "JavaScript", "React", "Vue.js"}},
	{Name: "Databases", Skills: []string{"PostgreSQL", "MongoDB", "MySQL", "Redis"}},
	{Name: "Tools", Skills: []string{"Git", "Docker", "Jenkins", "AWS", "Linux"}},
}

var services = []entity.Service{
	{Title: "Web Development", Description: "Full-stack web development with modern frameworks", Icon: "💻"},
	{Title: "API Development", Description: "RESTful and GraphQL API development", Icon: "⚙️"},
	{Title: "Database Design", Description: "Database architecture and optimization", Icon: "🗄️"},
	{Title: "Consulting", Description: "Technical consulting and code review", Icon: "📋"},
}

// CatalogRepository serves the compiled-in site content. It holds no
// mutable state, so one instance is shared by all requests.
type CatalogRepository struct {
	projects []entity.PortfolioItem
	byId     map[int]int
	skills   []entity.SkillCategory
	services []entity.Service
}

func NewCatalogRepository() *CatalogRepository {
	byId := make(map[int]int, len(projects))
	for i, p := range projects {
		byId[p.Id] = i
	}
	return &CatalogRepository{
		projects: projects,
		byId:     byId,
		skills:   skills,
		services: services,
	}
}

// ListProjects returns a deep copy; callers may modify it freely.
func (r *CatalogRepository) ListProjects() []entity.PortfolioItem {
	out := make([]entity.PortfolioItem, len(r.projects))
	for i, p := range r.projects {
		out[i] = cloneProject(p)
	}
	return out
}

func (r *CatalogRepository) GetProject(id int) (*entity.PortfolioItem, bool) {
	i, ok := r.byId[id]
	if !ok {
		return nil, false
	}
	p := cloneProject(r.projects[i])
	return &p, true
}

func cloneProject(p entity.PortfolioItem) entity.PortfolioItem {
	p.Technologies = slices.Clone(p.Technologies)
	return p
}

func (r *CatalogRepository) ListSkillCategories() []entity.SkillCategory {
	out := make([]entity.SkillCategory, len(r.skills))
	for i, c := range r.skills {
		out[i] = entity.SkillCategory{Name: c.Name, Skills: slices.Clone(c.Skills)}
	}
	return out
}

func (r *CatalogRepository) ListServices() []entity.Service {
	return slices.Clone(r.services)
}
