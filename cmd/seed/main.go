// seed carga productos en el almacén configurado a partir de un CSV con cabecera
// name,price,category,details (mismo formato que /api/catalog/export.csv).
//
// Uso: go run ./cmd/seed [-latin1] [-images dir] archivo.csv
// Con -latin1 el archivo se decodifica como ISO-8859-1.
// Con -images, las fotos <dir>/<n>.jpg|png (n = número de fila, desde 1) se adjuntan como portada.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/showroom-api/internal/application/dto"
	"github.com/jhoicas/showroom-api/internal/application/usecase"
	"github.com/jhoicas/showroom-api/internal/infrastructure/csvexport"
	"github.com/jhoicas/showroom-api/internal/infrastructure/storage"
	"github.com/jhoicas/showroom-api/pkg/config"
	"github.com/jhoicas/showroom-api/pkg/logger"
)

func main() {
	latin1 := flag.Bool("latin1", false, "decodificar el CSV como ISO-8859-1")
	imagesDir := flag.String("images", "", "directorio con fotos <fila>.jpg|png")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Uso: seed [-latin1] [-images dir] archivo.csv")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, File: cfg.Log.File})
	defer log.Close()

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir CSV")
	}
	defer f.Close()

	var r io.Reader = f
	if *latin1 {
		r = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	}
	rows, err := csvexport.Decode(r)
	if err != nil {
		log.Fatal().Err(err).Msg("leer CSV")
	}

	store, err := storage.Open(*cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento")
	}
	defer store.Close()

	products := usecase.NewProductUseCase(store.Products, cfg.Catalog.CurrencySymbol)
	created, skipped := 0, 0
	for i, row := range rows {
		in := dto.ProductRequest{Name: row.Name, Price: row.Price, Category: row.Category, Details: row.Details}
		if img, ok := findImage(*imagesDir, i+1); ok {
			in.Images = [][]byte{img}
		}
		out, err := products.Create(context.Background(), in)
		if err != nil {
			log.Warn().Err(err).Int("row", i+1).Str("name", row.Name).Msg("fila omitida")
			skipped++
			continue
		}
		log.Debug().Int64("id", out.ID).Str("name", out.Name).Msg("producto creado")
		created++
	}
	log.Info().Int("created", created).Int("skipped", skipped).Str("storage", store.Driver).Msg("carga finalizada")
}

func findImage(dir string, n int) ([]byte, bool) {
	if dir == "" {
		return nil, false
	}
	for _, ext := range []string{"jpg", "jpeg", "png"} {
		data, err := os.ReadFile(filepath.Join(dir, fmt.Sprintf("%d.%s", n, ext)))
		if err == nil {
			return data, true
		}
	}
	return nil, false
}
