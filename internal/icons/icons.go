// Package icons 生成应用图标：紫蓝渐变圆形，外部透明。
//
// 同一套像素既用于托盘图标（ICO），也通过 `chatdock icons` 写出打包用的 PNG/ICO 文件。
package icons

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"

	ico "github.com/sergeymakinen/go-ico"
	xdraw "golang.org/x/image/draw"
)

var (
	blueViolet = [3]float32{138, 43, 226}
	dodgerBlue = [3]float32{30, 144, 255}
)

// 直接渲染的最小尺寸，更小的尺寸从大图缩放得到
const minDirectSize = 32

// File 打包用的图标文件
type File struct {
	Name string
	Size int
}

// Files 写出的 PNG 文件及其边长
var Files = []File{
	{Name: "32x32.png", Size: 32},
	{Name: "128x128.png", Size: 128},
	{Name: "128x128@2x.png", Size: 256},
}

// ICOName ICO 文件名
const ICOName = "icon.ico"

// ICOSizes ICO 中包含的尺寸
var ICOSizes = []int{16, 24, 32, 48, 256}

// 边缘亮度。浅色任务栏上压暗边缘，保证图标轮廓清晰
const (
	edgeBrightness      = 0.7
	edgeBrightnessLight = 0.55
)

// Render 按边长渲染图标。
// 颜色随极角从 BlueViolet 过渡到 DodgerBlue，亮度从圆心向边缘由 1.0 降到 0.7
func Render(size int) *image.RGBA {
	return render(size, edgeBrightness)
}

func render(size int, floor float32) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	if size <= 0 {
		return img
	}

	center := size / 2
	radius := float32(size/2 - 2)
	if radius < 1 {
		radius = 1
	}

	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			dx := x - center
			dy := y - center
			distance := float32(math.Sqrt(float64(dx*dx + dy*dy)))
			if distance > radius {
				continue // 透明
			}

			angle := float32(math.Atan2(float64(dy), float64(dx))) + math.Pi
			t := angle / (2 * math.Pi)

			edge := (radius - distance) / radius
			brightness := floor + (1-floor)*edge

			var rgb [3]uint8
			for i := range rgb {
				c := uint8(blueViolet[i]*(1-t) + dodgerBlue[i]*t)
				rgb[i] = uint8(float32(c) * brightness)
			}
			img.SetRGBA(x, y, color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255})
		}
	}
	return img
}

// Scale 用 Catmull-Rom 插值把图像缩放为 size×size
func Scale(src image.Image, size int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)
	return dst
}

// Image 返回指定边长的图标，小尺寸从 256 的大图缩放以保持边缘平滑
func Image(size int) *image.RGBA {
	if size >= minDirectSize {
		return Render(size)
	}
	return Scale(Render(256), size)
}

// PNG 返回指定边长的 PNG 编码
func PNG(size int) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, Image(size)); err != nil {
		return nil, fmt.Errorf("编码 PNG 失败: %w", err)
	}
	return buf.Bytes(), nil
}

// ICO 返回包含给定尺寸的 ICO 编码，未指定时使用 ICOSizes
func ICO(sizes ...int) ([]byte, error) {
	if len(sizes) == 0 {
		sizes = ICOSizes
	}
	images := make([]image.Image, 0, len(sizes))
	for _, s := range sizes {
		images = append(images, Image(s))
	}

	var buf bytes.Buffer
	if err := ico.EncodeAll(&buf, images); err != nil {
		return nil, fmt.Errorf("编码 ICO 失败: %w", err)
	}
	return buf.Bytes(), nil
}

// TrayICO 托盘图标，dark 表示暗色任务栏
func TrayICO(dark bool) ([]byte, error) {
	if dark {
		return ICO(16, 24, 32)
	}
	var images []image.Image
	big := render(256, edgeBrightnessLight)
	for _, s := range []int{16, 24} {
		images = append(images, Scale(big, s))
	}
	images = append(images, render(32, edgeBrightnessLight))

	var buf bytes.Buffer
	if err := ico.EncodeAll(&buf, images); err != nil {
		return nil, fmt.Errorf("编码 ICO 失败: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteAll 把 PNG 和 ICO 写入目录，返回写出的文件路径
func WriteAll(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("创建图标目录失败: %w", err)
	}

	var written []string
	for _, f := range Files {
		data, err := PNG(f.Size)
		if err != nil {
			return written, err
		}
		path := filepath.Join(dir, f.Name)
		if err := os.WriteFile(path, data, 0644); err != nil {
			return written, fmt.Errorf("写入 %s 失败: %w", path, err)
		}
		written = append(written, path)
	}

	data, err := ICO()
	if err != nil {
		return written, err
	}
	path := filepath.Join(dir, ICOName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return written, fmt.Errorf("写入 %s 失败: %w", path, err)
	}
	return append(written, path), nil
}
