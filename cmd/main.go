package main

import (
	"github.com/JohnMutemi/sharpQuill-Back-end/internal/app"
	"github.com/JohnMutemi/sharpQuill-Back-end/internal/config"
	"github.com/gin-gonic/gin"
)

func main() {
	gin.SetMode(gin.ReleaseMode)
	cfg := config.MustLoad()
	app.Run(cfg)
}
