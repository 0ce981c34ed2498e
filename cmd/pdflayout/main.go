/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/klippa-app/go-pdfium/webassembly"
	"github.com/urfave/cli/v3"

	"github.com/unidoc/pdflayout"
	"github.com/unidoc/pdflayout/encoding"
	"github.com/unidoc/pdflayout/internal/httpapi"
)

// Grounded on ivanvanderbyl-pdfmarkdown/example/main.go: a single
// webassembly.Init pool shared across the command's lifetime, one
// instance checked out per invocation.
func main() {
	cmd := &cli.Command{
		Name:  "pdflayout",
		Usage: "Page-level document layout analysis over a PDF file",
		Commands: []*cli.Command{
			blocksCommand(),
			renderCommand(),
			serveCommand(),
		},
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func blocksCommand() *cli.Command {
	return &cli.Command{
		Name:  "blocks",
		Usage: "Dump JSON blocks for a page range",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Required: true},
			&cli.IntFlag{Name: "start-page", Value: 0},
			&cli.IntFlag{Name: "end-page", Value: -1},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			doc, cleanup, err := openDocument(cmd.String("input"))
			if err != nil {
				return err
			}
			defer cleanup()

			start := int(cmd.Int("start-page"))
			end := int(cmd.Int("end-page"))
			if end < 0 {
				end = doc.PageCount() - 1
			}
			for page := start; page <= end; page++ {
				blocks, err := doc.GetPageBlocks(page)
				if err != nil {
					return fmt.Errorf("page %d: %w", page, err)
				}
				if err := encoding.EncodeBlocks(os.Stdout, blocks); err != nil {
					return err
				}
				fmt.Println()
			}
			return nil
		},
	}
}

func renderCommand() *cli.Command {
	return &cli.Command{
		Name:  "render",
		Usage: "Write a page's raw RGB24 bitmap to a file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Required: true},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Required: true},
			&cli.IntFlag{Name: "page", Value: 0},
			&cli.IntFlag{Name: "width", Value: 1024},
			&cli.IntFlag{Name: "height", Value: 1448},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			doc, cleanup, err := openDocument(cmd.String("input"))
			if err != nil {
				return err
			}
			defer cleanup()

			data, err := doc.RenderPage(int(cmd.Int("page")), int(cmd.Int("width")), int(cmd.Int("height")))
			if err != nil {
				return err
			}
			return os.WriteFile(cmd.String("output"), data, 0644)
		},
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve blocks and debug overlays for a document over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Required: true},
			&cli.StringFlag{Name: "addr", Value: ":8080"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			doc, cleanup, err := openDocument(cmd.String("input"))
			if err != nil {
				return err
			}
			defer cleanup()

			router := httpapi.NewRouter(doc)
			return http.ListenAndServe(cmd.String("addr"), router)
		},
	}
}

func openDocument(path string) (*pdflayout.Handle, func(), error) {
	pool, err := webassembly.Init(webassembly.Config{MinIdle: 1, MaxIdle: 1, MaxTotal: 1})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialise pdfium: %w", err)
	}
	instance, err := pool.GetInstance(30 * time.Second)
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("failed to get pdfium instance: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	doc, err := pdflayout.Open(instance, data, nil)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}

	cleanup := func() {
		doc.Close()
		pool.Close()
	}
	return doc, cleanup, nil
}
