package main

import "feed-backend/internal/app"

func main() {
	app.Run()
}
