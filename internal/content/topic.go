package content

import (
	"context"
	"fmt"
	"strings"

	"github.com/VictorTPhan/ella-app/internal/gateway"
)

const topicRequest = "Come up with a random noun or phrase."

// TopicProvider picks the round's topic.
type TopicProvider struct {
	gen Generator
}

// NewTopicProvider returns a TopicProvider over gen.
func NewTopicProvider(gen Generator) *TopicProvider {
	return &TopicProvider{gen: gen}
}

// Topic asks for a random topic and its tutorial.
func (p *TopicProvider) Topic(ctx context.Context) (*TopicInfo, error) {
	res, err := p.gen.Generate(ctx, topicContract, topicRequest)
	if err != nil {
		return nil, err
	}
	topic, err := required(topicContract, res, "topic")
	if err != nil {
		return nil, err
	}
	return &TopicInfo{Topic: topic, Tutorial: strings.TrimSpace(res["tutorial"])}, nil
}

// required returns the trimmed value of key, failing if it is blank.
func required(c gateway.Contract, res gateway.Result, key string) (string, error) {
	v := strings.TrimSpace(res[key])
	if v == "" {
		return "", &gateway.GenerationError{
			Contract: c.Name,
			Err:      fmt.Errorf("%w: %s", ErrEmptyField, key),
		}
	}
	return v, nil
}
