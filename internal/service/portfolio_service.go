package service

import (
	"portfolio-web/internal/entity"
	"portfolio-web/internal/repository/contract"
	"portfolio-web/pkg/store"
)

// Number of projects featured on the home page
const featuredProjects = 3

type IPortfolioService interface {
	RecordVisit(sess *store.Session) (int, error)
	FeaturedProjects() []entity.PortfolioItem
	ListProjects() []entity.PortfolioItem
	GetProject(id int) (*entity.PortfolioItem, error)
	ListSkillCategories() []entity.SkillCategory
	ListServices() []entity.Service
}

type portfolioService struct {
	catalog contract.CatalogRepository
}

func NewPortfolioService(catalog contract.CatalogRepository) IPortfolioService {
	return &portfolioService{catalog: catalog}
}

// RecordVisit bumps the visit counter of the session and returns the new value.
func (s *portfolioService) RecordVisit(sess *store.Session) (int, error) {
	visits := store.Get(sess, store.KeyVisits, 0) + 1
	if err := sess.Set(store.KeyVisits, visits); err != nil {
		return 0, err
	}
	return visits, nil
}

func (s *portfolioService) FeaturedProjects() []entity.PortfolioItem {
	all := s.catalog.ListProjects()
	if len(all) > featuredProjects {
		return all[:featuredProjects]
	}
	return all
}

func (s *portfolioService) ListProjects() []entity.PortfolioItem {
	return s.catalog.ListProjects()
}

func (s *portfolioService) GetProject(id int) (*entity.PortfolioItem, error) {
	p, ok := s.catalog.GetProject(id)
	if !ok {
		return nil, ErrProjectNotFound
	}
	return p, nil
}

func (s *portfolioService) ListSkillCategories() []entity.SkillCategory {
	return s.catalog.ListSkillCategories()
}

func (s *portfolioService) ListServices() []entity.Service {
	return s.catalog.ListServices()
}
