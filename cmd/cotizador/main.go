package main

import "github.com/njofredev/cotizador-examenes/internal/app"

func main() {
	app.Run()
}
