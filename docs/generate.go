package docs

//go:generate go run github.com/swaggo/swag/v2/cmd/swag@v2.0.0-rc5 init --v3.1 -d .. -g cmd/server/main.go -o . --ot go --exclude _examples --parseInternal
