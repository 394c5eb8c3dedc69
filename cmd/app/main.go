// @title Pendant Service API
// @version 1.0.0
// @description API пульта обучения робота: программы, редактор, ошибки и блокировки, исполнение. События публикуются в Kafka и websocket.
// @host localhost:8080
// @BasePath /api/v1
package main

import "github.com/iwtcode/pendantService/internal/app"

func main() {
	// Создаем и запускаем новый экземпляр приложения fx
	app.New().Run()
}
