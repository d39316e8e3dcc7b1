package main

import (
	"github.com/courseforge/courseforge/config"
	"github.com/courseforge/courseforge/internal/api"
)

func main() {
	cfg := config.LoadConfig()
	api.StartServer(cfg)
}
