package benchmark

import (
	"strings"
	"testing"

	"github.com/RMoulla/search-engine/internal/analysis"
)

var sampleTexts = map[string]string{
	"short": "Chaussure Running Homme légère pour la pluie",
	"medium": `Ordinateur portable 15 pouces pour étudiant avec écran antireflet,
        clavier rétroéclairé et batterie longue durée. Idéal pour le travail,
        les études et le divertissement. Livré avec une housse de protection
        et une souris sans fil. Garantie constructeur de deux ans.`,
	"long": strings.Repeat(`Téléphone 5G avec grand écran AMOLED, triple capteur photo
        et charge rapide. Le smartphone parfait pour les créateurs de contenu qui
        filment, montent et publient depuis leur mobile. Résistant à l'eau et à la
        poussière, certifié IP68, avec deux jours d'autonomie en usage normal. `, 20),
}

func BenchmarkNormalize(b *testing.B) {
	for name, text := range sampleTexts {
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(text)))
			for i := 0; i < b.N; i++ {
				_ = analysis.Normalize(text, true)
			}
		})
	}
}

func BenchmarkTokenize(b *testing.B) {
	for name, text := range sampleTexts {
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(text)))
			for i := 0; i < b.N; i++ {
				tokens := analysis.Tokenize(text)
				_ = tokens
			}
		})
	}
}

func BenchmarkTokenizeParallel(b *testing.B) {
	text := sampleTexts["medium"]
	b.ReportAllocs()
	b.SetBytes(int64(len(text)))
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			tokens := analysis.Tokenize(text)
			_ = tokens
		}
	})
}
