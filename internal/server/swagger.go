package server

//go:generate swag init -g internal/server/server.go -o docs

// @title adsift API
// @version 0.1
// @description Interactive documentation for the adsift content moderation API.
// @contact.name adsift Maintainers
// @contact.url https://github.com/tarekm/adsift
// @BasePath /
