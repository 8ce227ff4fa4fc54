package recognizer

import "strings"

// Label identifies one object class. The enumeration covers the labels of
// every profile; a Profile selects and orders a subset as its vocabulary.
type Label int

// The QuickDraw labels, in their canonical order.
const (
	Airplane Label = iota
	Apple
	Banana
	Baseball
	Basketball
	Bicycle
	Bird
	Book
	Bowtie
	Bus
	Car
	Cat
	Chair
	Clock
	Cloud
	CoffeeCup
	Computer
	Crown
	Diamond
	Dog
	Donut
	Door
	Elephant
	Eye
	Fish
	Flower
	Guitar
	Hand
	Hat
	Heart
	House
	Key
	Laptop
	Lightning
	Moon
	Mountain
	Mouse
	Mushroom
	Octopus
	Pencil
	Pizza
	Rainbow
	Shoe
	SmileyFace
	Star
	Sun
	Tree
	Umbrella
	Watch
	Wheel

	// Primitive shapes scored by the heuristics.
	Circle
	Square
	Triangle
	Line

	// Smiley is the basic profile's name for SmileyFace.
	Smiley

	numLabels
)

var labelNames = [numLabels]string{
	Airplane:   "airplane",
	Apple:      "apple",
	Banana:     "banana",
	Baseball:   "baseball",
	Basketball: "basketball",
	Bicycle:    "bicycle",
	Bird:       "bird",
	Book:       "book",
	Bowtie:     "bowtie",
	Bus:        "bus",
	Car:        "car",
	Cat:        "cat",
	Chair:      "chair",
	Clock:      "clock",
	Cloud:      "cloud",
	CoffeeCup:  "coffee cup",
	Computer:   "computer",
	Crown:      "crown",
	Diamond:    "diamond",
	Dog:        "dog",
	Donut:      "donut",
	Door:       "door",
	Elephant:   "elephant",
	Eye:        "eye",
	Fish:       "fish",
	Flower:     "flower",
	Guitar:     "guitar",
	Hand:       "hand",
	Hat:        "hat",
	Heart:      "heart",
	House:      "house",
	Key:        "key",
	Laptop:     "laptop",
	Lightning:  "lightning",
	Moon:       "moon",
	Mountain:   "mountain",
	Mouse:      "mouse",
	Mushroom:   "mushroom",
	Octopus:    "octopus",
	Pencil:     "pencil",
	Pizza:      "pizza",
	Rainbow:    "rainbow",
	Shoe:       "shoe",
	SmileyFace: "smiley face",
	Star:       "star",
	Sun:        "sun",
	Tree:       "tree",
	Umbrella:   "umbrella",
	Watch:      "watch",
	Wheel:      "wheel",
	Circle:     "circle",
	Square:     "square",
	Triangle:   "triangle",
	Line:       "line",
	Smiley:     "smiley",
}

// String returns the display name of the label.
func (l Label) String() string {
	if l < 0 || l >= numLabels {
		return "unknown"
	}
	return labelNames[l]
}

// ParseLabel looks a label up by display name, ignoring case and
// surrounding whitespace.
func ParseLabel(name string) (Label, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for l, n := range labelNames {
		if n == name {
			return Label(l), true
		}
	}
	return 0, false
}

var basicVocabulary = []Label{
	Circle, Square, Triangle, Line, Star, Heart, Smiley,
	House, Tree, Car, Cat, Dog, Bird, Fish, Flower,
	Sun, Moon, Cloud, Rainbow,
}

// enhancedVocabulary is the QuickDraw list followed by the primitive shapes
// in the order the rules first score them.
var enhancedVocabulary = append(quickDrawLabels(), Circle, Square, Triangle, Line)

func quickDrawLabels() []Label {
	labels := make([]Label, 0, Wheel+1)
	for l := Airplane; l <= Wheel; l++ {
		labels = append(labels, l)
	}
	return labels
}
