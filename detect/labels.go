package detect

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadLabels reads the class labels the SSD model was trained on from the
// given text file, one label per line in class index order
func LoadLabels(file string) ([]string, error) {

	f, err := os.Open(file)

	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}

	defer f.Close()

	scanner := bufio.NewScanner(f)

	var labels []string

	for scanner.Scan() {
		labels = append(labels, strings.TrimSpace(scanner.Text()))
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	return labels, nil
}

// PersonClass returns the class index of the "person" label
func PersonClass(labels []string) (int, error) {

	for i, label := range labels {
		if strings.EqualFold(label, "person") {
			return i, nil
		}
	}

	return 0, fmt.Errorf("no person label in %d labels", len(labels))
}
