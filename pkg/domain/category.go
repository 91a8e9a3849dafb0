package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Category is a fixed news section. Its numeric value is the identity used to partition
// the local cache.
type Category int

// enum of supported categories, values are persisted and must not change
const (
	CategoryWorld Category = iota + 1
	CategoryBusiness
	CategorySports
	CategoryTechnology
	CategoryHealth
	CategoryEducation
	CategoryEntertainment
	CategoryTravel
	CategoryLaw
	CategoryScience
)

type categoryInfo struct {
	name  string
	param string
	title string
}

var categories = map[Category]categoryInfo{
	CategoryWorld:         {name: "world", param: "the-gioi", title: "World"},
	CategoryBusiness:      {name: "business", param: "kinh-doanh", title: "Business"},
	CategorySports:        {name: "sports", param: "the-thao", title: "Sports"},
	CategoryTechnology:    {name: "technology", param: "cong-nghe", title: "Technology"},
	CategoryHealth:        {name: "health", param: "suc-khoe", title: "Health"},
	CategoryEducation:     {name: "education", param: "giao-duc", title: "Education"},
	CategoryEntertainment: {name: "entertainment", param: "giai-tri", title: "Entertainment"},
	CategoryTravel:        {name: "travel", param: "du-lich", title: "Travel"},
	CategoryLaw:           {name: "law", param: "phap-luat", title: "Law"},
	CategoryScience:       {name: "science", param: "khoa-hoc", title: "Science"},
}

// Categories returns all categories ordered by identity
func Categories() []Category {
	res := make([]Category, 0, len(categories))
	for c := CategoryWorld; c <= CategoryScience; c++ {
		res = append(res, c)
	}
	return res
}

// ParseCategory resolves a category by numeric id, remote parameter or name
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	if id, err := strconv.Atoi(s); err == nil {
		c := Category(id)
		if !c.Valid() {
			return 0, fmt.Errorf("unknown category id %d", id)
		}
		return c, nil
	}
	for c, info := range categories {
		if strings.EqualFold(s, info.name) || s == info.param {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown category %q", s)
}

// Valid reports whether c is a member of the enumeration
func (c Category) Valid() bool {
	_, ok := categories[c]
	return ok
}

// ID returns the numeric identity, the local store partition key
func (c Category) ID() int { return int(c) }

// Param returns the remote path parameter of the category
func (c Category) Param() string { return categories[c].param }

// Title returns the human readable title
func (c Category) Title() string { return categories[c].title }

// String returns the category name
func (c Category) String() string {
	if info, ok := categories[c]; ok {
		return info.name
	}
	return "category(" + strconv.Itoa(int(c)) + ")"
}

// MarshalJSON encodes a category as its name
func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON accepts a name, a remote parameter or a numeric id
func (c *Category) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		var id int
		if err := json.Unmarshal(data, &id); err != nil {
			return fmt.Errorf("decode category: %w", err)
		}
		s = strconv.Itoa(id)
	}
	parsed, err := ParseCategory(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
