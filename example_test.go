package healthbot_test

import (
	"context"
	"fmt"
	"log"

	healthbot "github.com/FabioCLima/healthbot-project"
	"github.com/FabioCLima/healthbot-project/pkg/domain"
)

// exampleSearch returns a fixed source, standing in for a real search API.
type exampleSearch struct{}

func (exampleSearch) Search(ctx context.Context, query string) ([]domain.SearchResult, error) {
	return []domain.SearchResult{
		{Source: "https://med.example/hypertension", Content: "Hypertension means high blood pressure."},
	}, nil
}

// exampleGenerator replays canned responses, standing in for a real model.
type exampleGenerator struct{ responses []string }

func (g *exampleGenerator) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp := g.responses[0]
	g.responses = g.responses[1:]
	return resp, nil
}

// ExampleNew demonstrates driving a full conversation with injected
// collaborators. Real deployments pass the tavily and openai adapters
// instead.
func ExampleNew() {
	gen := &exampleGenerator{responses: []string{
		"Hypertension means the pressure in your arteries is too high.",
		"What does hypertension refer to?\nA) Blood pressure\nB) Blood sugar\nC) Heart rate\nD) Cholesterol",
		`{"score": 10, "feedback": "Correct!", "citations": ["Hypertension means the pressure in your arteries is too high."]}`,
	}}

	engine := healthbot.New(exampleSearch{}, gen)

	ctx := context.Background()
	sess, err := engine.Start(ctx)
	if err != nil {
		log.Fatal(err)
	}

	// The session pauses whenever it needs input.
	if err := sess.Resume(ctx, "hypertension"); err != nil {
		log.Fatal(err)
	}
	if err := sess.Resume(ctx, "A"); err != nil {
		log.Fatal(err)
	}
	if err := sess.Resume(ctx, "no"); err != nil {
		log.Fatal(err)
	}

	fmt.Println("terminated:", sess.Terminated())
	fmt.Println("score:", sess.State().Grade.Score)
	// Output:
	// terminated: true
	// score: 10
}
