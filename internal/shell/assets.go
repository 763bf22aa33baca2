package shell

import (
	"embed"
	"io/fs"

	"github.com/wailsapp/wails/v3/pkg/application"
)

//go:embed frontend
var frontend embed.FS

// Assets 本地窗口（设置页）使用的打包资源
func Assets() application.AssetOptions {
	sub, err := fs.Sub(frontend, "frontend")
	if err != nil {
		panic(err)
	}
	return application.AssetOptions{
		Handler: application.AssetFileServerFS(sub),
	}
}
