// Package main udeploy universal deployment engine API
//
//	@title			udeploy API
//	@version		1.0.0
//	@description	udeploy builds static and frontend projects and publishes them to hosting platforms
//
//	@contact.name	API Support
//	@contact.url	https://udeploy.dev/support
//	@contact.email	support@udeploy.dev
//
//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html
//
//	@host			localhost:3000
//	@BasePath		/api/v1
package main

import "github.com/mayaweb/udeploy/internal"

//go:generate swag init --parseDependency --outputTypes go -g ./main.go -o ./internal/server/docs

func main() {
	internal.Run()
}
