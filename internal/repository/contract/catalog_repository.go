package contract

import "portfolio-web/internal/entity"

type CatalogRepository interface {
	ListProjects() []entity.PortfolioItem
	GetProject(id int) (*entity.PortfolioItem, bool)
	ListSkillCategories() []entity.SkillCategory
	ListServices() []entity.Service
}
