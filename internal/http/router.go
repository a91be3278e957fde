package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/locallibrary/internal/middleware"
	"github.com/mrlokans/locallibrary/web"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// It panics when the templates cannot be parsed.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.AccessLog())
	router.Use(gin.Recovery())

	router.Use(middleware.SecurityHeaders())

	// CSRF must run before the session so the session context is layered on
	// top of the request CSRF produces
	if len(cfg.CSRFSecret) > 0 {
		router.Use(middleware.CSRF(cfg.CSRFSecret, cfg.SecureCookies))
	}
	if cfg.Sessions != nil {
		router.Use(cfg.Sessions.LoadSave())
	}

	tmpl, err := loadTemplates(cfg.TemplatesPath)
	if err != nil {
		panic(err)
	}
	router.SetHTMLTemplate(tmpl)

	if cfg.StaticPath != "" {
		router.Static("/static", cfg.StaticPath)
	} else {
		router.StaticFS("/static", http.FS(web.Static()))
	}

	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", health.Ping)

	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/catalog/")
	})

	registerCatalogRoutes(router.Group("/catalog"), cfg.Stores)

	return router
}

func registerCatalogRoutes(catalog *gin.RouterGroup, stores Stores) {
	index := NewIndexController(stores)
	catalog.GET("/", handle(index.Index))

	books := NewBooksController(stores)
	catalog.GET("/book/create", handle(books.CreateForm))
	catalog.POST("/book/create", handle(books.Create))
	catalog.GET("/book/:id/delete", handle(books.DeleteForm))
	catalog.POST("/book/:id/delete", handle(books.Delete))
	catalog.GET("/book/:id/update", handle(books.UpdateForm))
	catalog.POST("/book/:id/update", handle(books.Update))
	catalog.GET("/book/:id", handle(books.Detail))
	catalog.GET("/books", handle(books.List))

	authors := NewAuthorsController(stores.Authors, stores.Books)
	catalog.GET("/author/create", handle(authors.CreateForm))
	catalog.POST("/author/create", handle(authors.Create))
	catalog.GET("/author/:id/delete", handle(authors.DeleteForm))
	catalog.POST("/author/:id/delete", handle(authors.Delete))
	catalog.GET("/author/:id/update", handle(authors.UpdateForm))
	catalog.POST("/author/:id/update", handle(authors.Update))
	catalog.GET("/author/:id", handle(authors.Detail))
	catalog.GET("/authors", handle(authors.List))

	genres := NewGenresController(stores.Genres, stores.Books)
	catalog.GET("/genre/create", handle(genres.CreateForm))
	catalog.POST("/genre/create", handle(genres.Create))
	catalog.GET("/genre/:id/delete", handle(genres.DeleteForm))
	catalog.POST("/genre/:id/delete", handle(genres.Delete))
	catalog.GET("/genre/:id/update", handle(genres.UpdateForm))
	catalog.POST("/genre/:id/update", handle(genres.Update))
	catalog.GET("/genre/:id", handle(genres.Detail))
	catalog.GET("/genres", handle(genres.List))

	instances := NewBookInstancesController(stores.BookInstances, stores.Books)
	catalog.GET("/bookinstance/create", handle(instances.CreateForm))
	catalog.POST("/bookinstance/create", handle(instances.Create))
	catalog.GET("/bookinstance/:id/delete", handle(instances.DeleteForm))
	catalog.POST("/bookinstance/:id/delete", handle(instances.Delete))
	catalog.GET("/bookinstance/:id/update", handle(instances.UpdateForm))
	catalog.POST("/bookinstance/:id/update", handle(instances.Update))
	catalog.GET("/bookinstance/:id", handle(instances.Detail))
	catalog.GET("/bookinstances", handle(instances.List))
}
