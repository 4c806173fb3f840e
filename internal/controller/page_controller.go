package controller

import (
	"errors"

	"portfolio-web/internal/pkg/serverutils"
	"portfolio-web/internal/service"
	"portfolio-web/pkg/store"

	"github.com/gofiber/fiber/v2"
)

type IPageController interface {
	RegisterRoutes(r fiber.Router)
	Index(ctx *fiber.Ctx) error
	About(ctx *fiber.Ctx) error
	Portfolio(ctx *fiber.Ctx) error
	ProjectDetail(ctx *fiber.Ctx) error
	Skills(ctx *fiber.Ctx) error
	Services(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
}

type pageController struct {
	service service.IPortfolioService
}

func NewPageController(service service.IPortfolioService) IPageController {
	return &pageController{service: service}
}

func (c *pageController) RegisterRoutes(r fiber.Router) {
	r.Get("/", c.Index)
	r.Get("/about", c.About)
	r.Get("/portfolio", c.Portfolio)
	r.Get("/project/:id<int>", c.ProjectDetail)
	r.Get("/skills", c.Skills)
	r.Get("/services", c.Services)
	r.Get("/healthz", c.Health)
}

func (c *pageController) Index(ctx *fiber.Ctx) error {
	sess := serverutils.SessionFrom(ctx)
	visits, err := c.service.RecordVisit(sess)
	if err != nil {
		return err
	}

	// Redirects such as logout pass a notice through the query string
	if message := ctx.Query("message"); message != "" {
		sess.Flash(store.FlashInfo, message)
	}

	return serverutils.Render(ctx, "index", fiber.Map{
		"visits":   visits,
		"projects": c.service.FeaturedProjects(),
		"skills":   c.service.ListSkillCategories(),
	})
}

func (c *pageController) About(ctx *fiber.Ctx) error {
	return serverutils.Render(ctx, "about", fiber.Map{
		"user_name": store.Get(serverutils.SessionFrom(ctx), store.KeyUser, "Guest"),
	})
}

func (c *pageController) Portfolio(ctx *fiber.Ctx) error {
	return serverutils.Render(ctx, "portfolio", fiber.Map{
		"projects": c.service.ListProjects(),
		"skills":   c.service.ListSkillCategories(),
	})
}

func (c *pageController) ProjectDetail(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return fiber.ErrNotFound
	}

	project, err := c.service.GetProject(id)
	if errors.Is(err, service.ErrProjectNotFound) {
		return serverutils.FlashRedirect(ctx, store.FlashDanger, "Project not found!", "/portfolio")
	}
	if err != nil {
		return err
	}

	return serverutils.Render(ctx, "project_detail", fiber.Map{"project": project})
}

func (c *pageController) Skills(ctx *fiber.Ctx) error {
	return serverutils.Render(ctx, "skills", fiber.Map{
		"skills": c.service.ListSkillCategories(),
	})
}

func (c *pageController) Services(ctx *fiber.Ctx) error {
	return serverutils.Render(ctx, "services", fiber.Map{
		"services": c.service.ListServices(),
	})
}

func (c *pageController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{"status": "ok"})
}
