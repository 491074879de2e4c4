// Package menuimport loads menus typed as plain text, one dish per line in
// the form "Name — €5,00", optionally followed by a description line.
package menuimport

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"digital-menu-api/models"

	"github.com/shopspring/decimal"
)

// DishMarker separates a dish name from its price
const DishMarker = "— €"

type Dish struct {
	Name        string
	Description string
	Price       decimal.Decimal
}

type Category struct {
	Name   string
	Dishes []Dish
}

// Menu is the result of parsing a full menu. Warnings name lines that were skipped.
type Menu struct {
	Categories []Category
	Warnings   []string
}

// IsDishLine reports whether line carries a dish and its price
func IsDishLine(line string) bool {
	return strings.Contains(line, DishMarker)
}

// ParseDishLine splits "Bruschetta classica — €5,00" into name and price
func ParseDishLine(line string) (string, decimal.Decimal, error) {
	name, rawPrice, ok := strings.Cut(line, DishMarker)
	if !ok {
		return "", decimal.Zero, fmt.Errorf("not a dish line: %q", line)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", decimal.Zero, fmt.Errorf("dish without name: %q", line)
	}
	price, err := models.ParsePrice(rawPrice)
	if err != nil {
		return "", decimal.Zero, err
	}
	return name, price, nil
}

// looksLikeCategory is the heading heuristic: all upper case and longer than three characters
func looksLikeCategory(line string) bool {
	return line == strings.ToUpper(line) && utf8.RuneCountInString(line) > 3
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read menu: %w", err)
	}
	return lines, nil
}

// Parse reads a whole menu. Lines that are not dishes open a new category,
// except short lines and page markers ("PAGINA"). A dish takes the following
// line as description unless that line is another dish or a heading.
func Parse(r io.Reader) (*Menu, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}

	menu := &Menu{}
	var current *Category
	for i := 0; i < len(lines); i++ {
		line := lines[i]

		if !IsDishLine(line) {
			if utf8.RuneCountInString(line) < 3 || strings.Contains(line, "PAGINA") {
				continue
			}
			menu.Categories = append(menu.Categories, Category{Name: line})
			current = &menu.Categories[len(menu.Categories)-1]
			continue
		}

		// a dish with no category is dropped alone; the line after it is read as usual
		if current == nil {
			menu.Warnings = append(menu.Warnings, fmt.Sprintf("line %q: dish before any category, skipped", line))
			continue
		}

		description := ""
		if i+1 < len(lines) && !IsDishLine(lines[i+1]) && !looksLikeCategory(lines[i+1]) {
			description = lines[i+1]
			i++
		}
		name, price, err := ParseDishLine(line)
		if err != nil {
			menu.Warnings = append(menu.Warnings, fmt.Sprintf("line %q: %v, skipped", line, err))
			continue
		}
		current.Dishes = append(current.Dishes, Dish{Name: name, Description: description, Price: price})
	}
	return menu, nil
}

// ParseSection reads the dishes of a single category. The first line is the
// section header and is ignored; any non-dish line describes the dish above it.
func ParseSection(r io.Reader) ([]Dish, []string, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, nil, err
	}

	var (
		dishes   []Dish
		warnings []string
	)
	current := -1
	for i := 1; i < len(lines); i++ {
		line := lines[i]
		if IsDishLine(line) {
			name, price, err := ParseDishLine(line)
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("line %q: %v, skipped", line, err))
				current = -1
				continue
			}
			dishes = append(dishes, Dish{Name: name, Price: price})
			current = len(dishes) - 1
			continue
		}
		if current >= 0 {
			dishes[current].Description = line
		}
	}
	return dishes, warnings, nil
}
