package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/ByLCY/mapalb/album"
	"github.com/ByLCY/mapalb/binding"
	"github.com/ByLCY/mapalb/config"
	"github.com/ByLCY/mapalb/env"
	"github.com/ByLCY/mapalb/layout"
	"github.com/ByLCY/mapalb/renderer"
	canvasrenderer "github.com/ByLCY/mapalb/renderer/canvas"
)

func main() {
	envFile := flag.String("env", "", ".env 文件路径（默认读取当前目录的 .env）")
	input := flag.String("in", "", "相册 .mapalb/.mdb 文件路径（通过 mdb-export 读取）")
	tables := flag.String("tables", "", "包含 BookPages.csv、BookImage.csv、BookText.csv 的目录，替代 -in")
	profile := flag.String("profile", "", "渲染配置文件路径（默认读取 "+config.EnvProfile+"）")
	output := flag.String("out", "album", "输出文件前缀，对应模板中的 ${out}")
	debug := flag.String("debug", "", "布局调试 JSON 输出路径")
	flag.Parse()

	if *envFile != "" {
		env.Load(*envFile)
	} else {
		env.Load()
	}

	var src album.Source
	switch {
	case *tables != "":
		src = album.DirSource{Dir: *tables}
	case *input != "":
		src = album.MDBSource{Path: *input}
	default:
		log.Fatalf("必须通过 -in 或 -tables 指定相册数据")
	}

	// 命令行优先于环境变量
	profilePath := *profile
	if profilePath == "" {
		profilePath = env.StringVariable(config.EnvProfile, "")
	}
	cfg, err := config.Load(profilePath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	r, err := canvasrenderer.New(canvasrenderer.Options{
		FontPath:    cfg.FontPath,
		ImageDPI:    cfg.ImageDPI,
		BorderWidth: cfg.BorderWidth.PT(),
	})
	if err != nil {
		log.Fatalf("初始化渲染器失败: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	files, err := run(ctx, src, cfg, *output, *debug, r)
	if err != nil {
		log.Fatalf("生成 PDF 失败: %v", err)
	}
	for _, f := range files {
		fmt.Printf("已生成 PDF：%s\n", f)
	}
}

// run 串联读取、布局与分块渲染，返回写出的 PDF 文件路径。
func run(ctx context.Context, src album.Source, cfg config.Config, out, debugPath string, r renderer.Typesetter) ([]string, error) {
	if r == nil {
		return nil, fmt.Errorf("renderer 不能为空")
	}
	log.Printf("Loading data")
	a, err := album.Load(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("读取相册失败: %w", err)
	}

	result, err := layout.Build(a, layout.BuildOptions{
		Measurer:  r,
		Flags:     cfg.Flags,
		FontScale: cfg.FontScale,
		FirstPage: cfg.FirstPage,
		LastPage:  cfg.LastPage,
		Rewriter:  cfg.Rewriter(),
		Meta: layout.DocumentMeta{
			Title:   filepath.Base(out),
			Creator: "mapalb",
			Subject: cfg.Name,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("布局失败: %w", err)
	}
	if debugPath != "" {
		if err := layout.WriteDebugJSON(result, debugPath); err != nil {
			return nil, err
		}
	}

	var files []string
	for i, chunk := range chunkPages(result.Pages, cfg.ChunkSize) {
		if err := ctx.Err(); err != nil {
			return files, err
		}
		name, err := binding.Expand(cfg.Output, templateData(out, i, chunk))
		if err != nil {
			return files, err
		}
		data, err := r.Render(&layout.Result{Pages: chunk, Meta: result.Meta})
		if err != nil {
			return files, fmt.Errorf("渲染 %s 失败: %w", name, err)
		}
		if dir := filepath.Dir(name); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return files, fmt.Errorf("创建输出目录失败: %w", err)
			}
		}
		if err := os.WriteFile(name, data, 0o644); err != nil {
			return files, fmt.Errorf("写入 PDF 失败: %w", err)
		}
		log.Printf("Saved pages %d-%d to %s", chunk[0].Number, chunk[len(chunk)-1].Number, name)
		files = append(files, name)
	}
	return files, nil
}

// templateData 是输出文件名模板可用的数据：${out}、${chunk}、${first}、${last}，
// 以及嵌套形式的 ${range.first}、${range.last} 和页码列表 ${pages[i]}。
func templateData(out string, chunk int, pages []layout.Page) map[string]any {
	numbers := make([]any, len(pages))
	for i, p := range pages {
		numbers[i] = p.Number
	}
	first, last := pages[0].Number, pages[len(pages)-1].Number
	return map[string]any{
		"out":   out,
		"chunk": chunk,
		"first": first,
		"last":  last,
		"range": map[string]any{"first": first, "last": last},
		"pages": numbers,
	}
}

// chunkPages 按每个文件 size 页切分；size 小于等于 0 时全部放入一个文件。
func chunkPages(pages []layout.Page, size int) [][]layout.Page {
	if len(pages) == 0 {
		return nil
	}
	if size <= 0 {
		size = len(pages)
	}
	var chunks [][]layout.Page
	for start := 0; start < len(pages); start += size {
		end := min(start+size, len(pages))
		chunks = append(chunks, pages[start:end])
	}
	return chunks
}
