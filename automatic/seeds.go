package automatic

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"lukechampine.com/frand"
)

// GenerateSeeds creates n random seeds, one per game.
func GenerateSeeds(n int) []uint64 {
	seeds := make([]uint64, n)
	for i := range seeds {
		// never zero; a zero seed means "pick one" to StartCompVComp
		seeds[i] = frand.Uint64n(math.MaxUint64) + 1
	}
	return seeds
}

// SaveSeeds writes seeds to a file, one decimal number per line.
func SaveSeeds(seeds []uint64, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create seed file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	if _, err := writer.WriteString("# autoplay game seeds\n"); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, seed := range seeds {
		if _, err := writer.WriteString(strconv.FormatUint(seed, 10) + "\n"); err != nil {
			return fmt.Errorf("failed to write seed %d: %w", i, err)
		}
	}
	return writer.Flush()
}

// LoadSeeds reads seeds written by SaveSeeds.
func LoadSeeds(path string) ([]uint64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer file.Close()

	var seeds []uint64
	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		seed, err := strconv.ParseUint(line, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad seed at line %d: %w", lineNum, err)
		}
		seeds = append(seeds, seed)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading seed file: %w", err)
	}
	return seeds, nil
}
