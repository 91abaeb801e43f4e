package sim

import "math/rand"

// Category is one of the four fixed content areas of the diagnostic.
type Category int

const (
	OralLanguage Category = iota
	WordKnowledge
	ReadingComprehension
	LanguageStructure
)

var categoryNames = [NumCategories]string{
	"Oral Language",
	"Word Knowledge",
	"Reading Comprehension",
	"Language Structure",
}

// String returns the human-readable category name.
func (c Category) String() string {
	if c < 0 || int(c) >= NumCategories {
		return "Unknown"
	}
	return categoryNames[c]
}

// CategoryAt returns the category owning item position pos (0-based).
// Positions 0-6, 7-13, 14-20 and 21-27 map to categories 1-4.
func CategoryAt(pos int) Category {
	return Category(pos / ItemsPerCategory)
}

// Item is one question of a test form.
type Item struct {
	Position       int
	Category       Category
	Difficulty     float64
	Discrimination float64 // always > 0
}

// TestForm is the ordered sequence of items a student answers.
type TestForm [NumItems]Item

// ItemBank holds the difficulty range of each category block and the shared
// discrimination range. Ranges narrow and shift upward with category index.
type ItemBank struct {
	Difficulty     [NumCategories]*UniformSampler
	Discrimination *UniformSampler
}

// DefaultItemBank returns the standard 4-category bank.
func DefaultItemBank() *ItemBank {
	return &ItemBank{
		Difficulty: [NumCategories]*UniformSampler{
			mustUniform(-1.5, 2.0),
			mustUniform(-1.0, 2.0),
			mustUniform(-0.5, 2.0),
			mustUniform(0.0, 2.0),
		},
		Discrimination: mustUniform(0.8, 2.0),
	}
}

// SampleItems draws a complete test form. For every position the difficulty
// is drawn before the discrimination.
func (b *ItemBank) SampleItems(rng *rand.Rand) TestForm {
	var form TestForm
	for pos := range form {
		cat := CategoryAt(pos)
		form[pos] = Item{
			Position:       pos,
			Category:       cat,
			Difficulty:     b.Difficulty[cat].Sample(rng),
			Discrimination: b.Discrimination.Sample(rng),
		}
	}
	return form
}
