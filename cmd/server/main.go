package main

import "dayflow/internal/app/server"

func main() {
	server.Run()
}
