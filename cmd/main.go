package main

import "github.com/todoapp/todo-backend/internal/app"

func main() {
	app.Run()
}
