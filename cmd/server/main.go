package main

import (
	"html/template"
	"log"
	"path/filepath"
	"plantastic/internal/config"
	"plantastic/internal/db"
	"plantastic/internal/realtime"
	"plantastic/internal/router"
	"plantastic/internal/services"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/multitemplate"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize Database
	db.Init(cfg.Database)

	gin.SetMode(cfg.GinMode)
	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	if len(cfg.CORSOrigins) == 0 || (len(cfg.CORSOrigins) == 1 && cfg.CORSOrigins[0] == "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.CORSOrigins
		corsCfg.AllowCredentials = true
	}
	corsCfg.AddAllowHeaders("Authorization")
	r.Use(cors.New(corsCfg))

	// Setup Sessions
	store := cookie.NewStore([]byte(cfg.Auth.SessionSecret))
	store.Options(sessions.Options{Path: "/", MaxAge: int(cfg.Auth.TokenTTL.Seconds()), HttpOnly: true})
	r.Use(sessions.Sessions("plantastic_session", store))

	// Load Templates using Multitemplate to avoid collision and allow handler names
	r.HTMLRender = loadTemplates(cfg.TemplatesDir)

	// Static Assets
	r.Static("/static", cfg.StaticDir)
	r.StaticFile("/favicon.ico", filepath.Join(cfg.StaticDir, "img", "favicon.svg"))

	hub := realtime.NewHub()
	go hub.Run()
	defer hub.Close()

	mail := services.NewMailService(cfg.SMTP, cfg.SiteURL, cfg.TemplatesDir)
	tokens := services.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	plants := services.NewPlantCatalog(cfg.PlantDataPath)

	router.RegisterRoutes(r, router.Deps{
		DB:       db.DB,
		Tokens:   tokens,
		Accounts: services.NewAccountService(db.DB, tokens, plants),
		Forum:    services.NewForumService(db.DB, mail),
		Plants:   plants,
		Intake:   services.NewIntakeService(db.DB, mail),
		Hub:      hub,
		SiteURL:  cfg.SiteURL,
		Pages:    true,
	})

	log.Printf("PlantasticCare server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}

func loadTemplates(templatesDir string) multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	layouts, err := filepath.Glob(templatesDir + "/layouts/*.html")
	if err != nil {
		panic(err)
	}

	includes, err := filepath.Glob(templatesDir + "/includes/*.html")
	if err != nil {
		panic(err)
	}

	assemble := func(view string) []string {
		files := make([]string, 0, len(layouts)+len(includes)+1)
		files = append(files, layouts...)
		files = append(files, includes...)
		files = append(files, view)
		return files
	}

	funcMap := template.FuncMap{
		"year": func() int {
			return time.Now().Year()
		},
	}

	views := []string{
		"index.html",
		"forum.html",
		"plants.html",
		"about.html",
		"profile.html",
		"auth/login.html",
		"auth/register.html",
		"error.html",
	}
	for _, v := range views {
		r.AddFromFilesFuncs(v, funcMap, assemble(templatesDir+"/views/"+v)...)
	}

	return r
}
