package server

//go:generate swag init -g internal/server/server.go -o internal/server/docs/swagger

// @title PhishLens API
// @version 0.1
// @description Lexical phishing URL checks backed by a random forest.
// @contact.name PhishLens Maintainers
// @contact.url https://github.com/raysh454/phishlens
// @BasePath /
