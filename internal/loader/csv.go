// Package loader builds the banner inventory from its delimited config
// source.
//
// The config is a headerless, semicolon-delimited file with one banner per
// row and a variable number of trailing category columns:
//
//	http://banners.com/banner1.jpg;100;sports;news
//
// Rows that fail to parse or fail inventory validation are logged and
// skipped so a single bad record never takes the whole config down.
package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/patrickwarner/bannerrotator/internal/inventory"

	"go.uber.org/zap"
)

// Result summarizes one load pass over the banner config.
type Result struct {
	Loaded  int
	Skipped int
}

// LoadFile reads the banner config at path and returns a frozen inventory
// store ready for concurrent serving.
func LoadFile(path string, logger *zap.Logger) (*inventory.Store, Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Result{}, fmt.Errorf("open banners config: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Load(f, logger)
}

// Load parses banner records from r into a new frozen store.
func Load(r io.Reader, logger *zap.Logger) (*inventory.Store, Result, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1

	store := inventory.NewStore()
	var res Result
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			logger.Warn("skipping malformed row", zap.Int("line", line), zap.Error(err))
			res.Skipped++
			continue
		}
		if len(record) < 2 {
			logger.Warn("skipping short row", zap.Int("line", line), zap.Int("fields", len(record)))
			res.Skipped++
			continue
		}
		total, err := strconv.ParseInt(record[1], 10, 32)
		if err != nil {
			logger.Warn("skipping row with bad impression amount",
				zap.Int("line", line), zap.String("amount", record[1]), zap.Error(err))
			res.Skipped++
			continue
		}
		if err := store.AddBanner(record[0], int32(total), record[2:]); err != nil {
			logger.Warn("skipping invalid banner",
				zap.Int("line", line), zap.String("url", record[0]), zap.Error(err))
			res.Skipped++
			continue
		}
		res.Loaded++
	}

	store.Freeze()
	return store, res, nil
}
