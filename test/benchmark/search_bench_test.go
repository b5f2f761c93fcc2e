package benchmark

import (
	"fmt"
	"testing"

	"github.com/RMoulla/search-engine/internal/catalog"
	"github.com/RMoulla/search-engine/internal/index"
	"github.com/RMoulla/search-engine/internal/search"
)

var categories = []string{"Sport", "Maison", "Informatique", "Mode", "Jardin"}

var brands = []string{"Nike", "Luminarc", "Asus", "Samsung", "Decathlon", "Adidas"}

var titleWords = []string{
	"chaussure", "veste", "mug", "ordinateur", "telephone", "montre",
	"sac", "lampe", "table", "clavier", "ecran", "casque",
	"running", "portable", "connectee", "pliable", "etanche", "sans fil",
}

func syntheticIndex(b *testing.B, numProducts int) *index.Index {
	b.Helper()
	columns := catalog.ColumnMap{
		catalog.FieldTitle:    "title",
		catalog.FieldPrice:    "price",
		catalog.FieldCategory: "category",
		catalog.FieldBrand:    "brand",
	}
	rows := make([]catalog.Row, numProducts)
	for i := 0; i < numProducts; i++ {
		rows[i] = catalog.Row{
			"title": fmt.Sprintf("%s %s %d",
				titleWords[i%len(titleWords)],
				titleWords[(i*7+3)%len(titleWords)],
				i,
			),
			"price":    fmt.Sprintf("%d.99", 10+i%500),
			"category": categories[i%len(categories)],
			"brand":    brands[i%len(brands)],
		}
	}
	corpus, err := catalog.Load(rows, columns)
	if err != nil {
		b.Fatalf("loading synthetic catalog: %v", err)
	}
	return index.Build(corpus)
}

func BenchmarkIndexBuild(b *testing.B) {
	sizes := []int{100, 1000, 10000}
	for _, size := range sizes {
		b.Run(fmt.Sprintf("products_%d", size), func(b *testing.B) {
			columns := catalog.ColumnMap{catalog.FieldTitle: "title"}
			rows := make([]catalog.Row, size)
			for i := 0; i < size; i++ {
				rows[i] = catalog.Row{"title": fmt.Sprintf("%s %s %d",
					titleWords[i%len(titleWords)],
					titleWords[(i*5+1)%len(titleWords)],
					i,
				)}
			}
			corpus, err := catalog.Load(rows, columns)
			if err != nil {
				b.Fatalf("loading synthetic catalog: %v", err)
			}
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = index.Build(corpus)
			}
		})
	}
}

func BenchmarkSearch(b *testing.B) {
	sizes := []int{100, 1000, 10000}
	for _, size := range sizes {
		idx := syntheticIndex(b, size)
		b.Run(fmt.Sprintf("products_%d", size), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				results, _ := search.Search(idx, "chaussure running etanche", search.Filters{}, 30, false)
				_ = results
			}
		})
	}
}

func BenchmarkSearchWithFilters(b *testing.B) {
	idx := syntheticIndex(b, 10000)
	min := 50.0
	filters := search.Filters{MinPrice: &min, Category: "Sport"}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		results, _ := search.Search(idx, "chaussure running", filters, 30, false)
		_ = results
	}
}

func BenchmarkSearchParallel(b *testing.B) {
	idx := syntheticIndex(b, 10000)
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			results, _ := search.Search(idx, "telephone ecran", search.Filters{}, 30, false)
			_ = results
		}
	})
}

func BenchmarkFuzzyRatio(b *testing.B) {
	pairs := [][2]string{
		{"chaussure running homme", "chaussur runing"},
		{"ordinateur portable 15 pouces", "ordi portable"},
		{"mug cadeau anniversaire", "cadeau anniversaire mug"},
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		p := pairs[i%len(pairs)]
		_ = search.Ratio(p[0], p[1])
	}
}
