package utils

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"

	"github.com/facette/natsort"
)

// CSV rows are ordered naturally by their first column.
type CSV [][]string

func (data CSV) Less(i, j int) bool {
	return natsort.Compare(data[i][0], data[j][0])
}

func (data CSV) Len() int {
	return len(data)
}
func (data CSV) Swap(i, j int) {
	data[i], data[j] = data[j], data[i]
}

func WriteAsCSV(data CSV, path string, columns []string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to save %s: %w", path, err)
	}
	defer file.Close()
	w := csv.NewWriter(file)
	if err := w.Write(columns); err != nil {
		return err
	}
	sort.Sort(data)
	if err := w.WriteAll(data); err != nil {
		return fmt.Errorf("error writing csv: %w", err)
	}
	return nil
}
