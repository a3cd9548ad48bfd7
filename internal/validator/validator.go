package validator

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/arcanaland/cardkeeper/internal/codec"
	"github.com/arcanaland/cardkeeper/internal/player"
)

type ValidationResults struct {
	Errors   []string
	Warnings []string
}

type Validator struct {
	StoragePath string
	Results     ValidationResults
}

// record is a decoded line together with where it came from
type record struct {
	lineNo int
	raw    string
	player *player.Player
}

func NewValidator(storagePath string) *Validator {
	return &Validator{
		StoragePath: storagePath,
		Results:     ValidationResults{},
	}
}

// Validate checks every line of the storage file. It only returns an error
// when the file cannot be read; problems with its content are collected in
// the results.
func (v *Validator) Validate() (ValidationResults, error) {
	records, err := v.readRecords()
	if err != nil {
		return v.Results, err
	}

	v.validateKeys(records)
	v.validateCardOrder(records)
	v.validatePlayerOrder(records)

	return v.Results, nil
}

func (v *Validator) readRecords() ([]record, error) {
	file, err := os.Open(v.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("storage file not found: %s", v.StoragePath)
	}
	defer file.Close()

	var records []record
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSuffix(scanner.Text(), "\r")

		if strings.TrimSpace(line) == "" {
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("line %d is blank", lineNo))
			continue
		}

		p, err := codec.Decode(line)
		if err != nil {
			v.Results.Errors = append(v.Results.Errors,
				fmt.Sprintf("line %d: %v", lineNo, err))
			continue
		}

		v.validateFields(lineNo, line, p)
		records = append(records, record{lineNo: lineNo, raw: line, player: p})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading storage file: %w", err)
	}

	return records, nil
}

// validateFields warns about hand edits the loader tolerates
func (v *Validator) validateFields(lineNo int, line string, p *player.Player) {
	fields := codec.Fields(line)
	used := 3 + 3*p.CardCount()

	for i := 0; i < used; i++ {
		f := fields[i]
		if strings.TrimSpace(f) != f {
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("line %d: field %d has surrounding whitespace", lineNo, i+1))
		}
		trimmed := strings.TrimSpace(f)
		if len(trimmed) < 2 || !strings.HasPrefix(trimmed, `"`) || !strings.HasSuffix(trimmed, `"`) {
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("line %d: field %d is not quoted", lineNo, i+1))
		}
	}

	extra := 0
	for _, f := range fields[used:] {
		if strings.TrimSpace(f) != "" {
			extra++
		}
	}
	if extra > 0 {
		v.Results.Warnings = append(v.Results.Warnings,
			fmt.Sprintf("line %d: %d extra fields after the last card are ignored", lineNo, extra))
	}
}

// validateKeys checks that player keys are unique
func (v *Validator) validateKeys(records []record) {
	firstSeen := make(map[string]int)
	for _, r := range records {
		key := r.player.Key()
		if first, ok := firstSeen[key]; ok {
			v.Results.Errors = append(v.Results.Errors,
				fmt.Sprintf("line %d: duplicate player key '%s' (first used on line %d)", r.lineNo, key, first))
			continue
		}
		firstSeen[key] = r.lineNo
	}
}

// validateCardOrder checks that cards were stored in year order
func (v *Validator) validateCardOrder(records []record) {
	for _, r := range records {
		fields := codec.Fields(r.raw)
		previous := -1
		for i := 0; i < r.player.CardCount(); i++ {
			year, err := strconv.Atoi(codec.Clean(fields[5+3*i]))
			if err != nil {
				v.Results.Errors = append(v.Results.Errors,
					fmt.Sprintf("line %d: card %d year: %v", r.lineNo, i+1, err))
				break
			}
			if year < previous {
				v.Results.Warnings = append(v.Results.Warnings,
					fmt.Sprintf("line %d: cards of player '%s' are not sorted by year", r.lineNo, r.player.Key()))
				break
			}
			previous = year
		}
	}
}

// validatePlayerOrder checks that players were stored in name order
func (v *Validator) validatePlayerOrder(records []record) {
	for i := 1; i < len(records); i++ {
		prev, cur := records[i-1].player, records[i].player
		if player.CompareByName(prev, cur) > 0 {
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("line %d: player '%s' is stored before '%s' but sorts after it",
					records[i-1].lineNo, prev.Name(), cur.Name()))
		}
	}
}
