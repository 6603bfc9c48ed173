package content

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/VictorTPhan/ella-app/internal/llm"
)

type demoWord struct {
	topic       string
	tutorial    string
	hangul      string
	phonetic    string
	reasoning   string
	sentence    string
	distractors [3]string
}

var demoWords = []demoWord{
	{
		topic:       "apple",
		tutorial:    "Apple is 사과 (sa-gwa). It is a native noun, so no particle is needed on its own.",
		hangul:      "사과",
		phonetic:    "sa-gwa",
		reasoning:   "사 sounds like 'sa' in 'salsa'. 과 sounds like 'gwa' in 'iguana'.",
		sentence:    "나는 ___를 먹어요.",
		distractors: [3]string{"so-gwe", "sa-kwon", "ja-gwi"},
	},
	{
		topic:       "the sea",
		tutorial:    "The sea is 바다 (ba-da). Add 에 to say 'at the sea': 바다에.",
		hangul:      "바다",
		phonetic:    "ba-da",
		reasoning:   "바 sounds like 'ba' in 'bar'. 다 sounds like 'da' in 'dad'.",
		sentence:    "___가 정말 파래요.",
		distractors: [3]string{"pa-ta", "bo-deo", "ma-na"},
	},
	{
		topic:       "school",
		tutorial:    "School is 학교 (hak-gyo). 학 means learning and 교 means teaching.",
		hangul:      "학교",
		phonetic:    "hak-gyo",
		reasoning:   "학 sounds like 'hock'. 교 sounds like 'gyo' in 'gyoza'.",
		sentence:    "저는 매일 ___에 가요.",
		distractors: [3]string{"hang-gyu", "kak-jo", "hap-kyeo"},
	},
	{
		topic:       "friend",
		tutorial:    "Friend is 친구 (chin-gu). Use 친구야 to call out to a friend.",
		hangul:      "친구",
		phonetic:    "chin-gu",
		reasoning:   "친 sounds like 'chin'. 구 sounds like 'goo'.",
		sentence:    "___와 같이 놀아요.",
		distractors: [3]string{"jin-ko", "chan-gi", "sin-gwa"},
	},
}

// NewDemoProvider returns an offline llm.Provider that cycles through a
// small fixed vocabulary. It answers every contract the stage providers
// use, so the quiz runs without a network.
func NewDemoProvider() llm.Provider {
	d := &demo{}
	return llm.NewScriptedProvider(d.reply)
}

type demo struct {
	mu   sync.Mutex
	next int
}

func (d *demo) reply(req llm.Request) (json.RawMessage, error) {
	if req.Schema == nil || len(req.Messages) == 0 {
		return nil, &llm.ErrInvalidResponse{Err: fmt.Errorf("demo provider needs a schema and a message")}
	}
	input := strings.TrimSpace(req.Messages[len(req.Messages)-1].Content)

	var out map[string]string
	switch req.Schema.Name {
	case topicContract.Name:
		w := d.pick()
		out = map[string]string{"topic": w.topic, "tutorial": w.tutorial}
	case translateContract.Name:
		w, err := lookup(func(w demoWord) bool { return w.topic == input })
		if err != nil {
			return nil, err
		}
		out = map[string]string{"hangul": w.hangul}
	case hangulPhoneticsContract.Name:
		w, err := lookup(func(w demoWord) bool { return w.hangul == input })
		if err != nil {
			return nil, err
		}
		out = map[string]string{"thought_process": w.reasoning, "final_sequence": w.phonetic}
	case englishPhoneticsContract.Name:
		w, err := lookup(func(w demoWord) bool { return w.topic == input })
		if err != nil {
			return nil, err
		}
		out = map[string]string{
			"thought_process": fmt.Sprintf("%q is %s in Korean. %s", w.topic, w.hangul, w.reasoning),
			"final_sequence":  w.phonetic,
		}
	case sentenceContract.Name:
		w, err := lookup(func(w demoWord) bool { return w.topic == input })
		if err != nil {
			return nil, err
		}
		out = map[string]string{"subject": w.hangul, "sentence_with_blank": w.sentence}
	case distractorsContract.Name:
		var in struct {
			Sequence string `json:"sequence"`
		}
		if err := json.Unmarshal([]byte(input), &in); err != nil {
			return nil, &llm.ErrInvalidResponse{Err: err}
		}
		w, err := lookup(func(w demoWord) bool { return w.phonetic == in.Sequence })
		if err != nil {
			return nil, err
		}
		out = map[string]string{
			"mutation_1": w.distractors[0],
			"mutation_2": w.distractors[1],
			"mutation_3": w.distractors[2],
		}
	default:
		return nil, &llm.ErrInvalidResponse{Err: fmt.Errorf("demo provider has no reply for %q", req.Schema.Name)}
	}

	b, err := json.Marshal(out)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (d *demo) pick() demoWord {
	d.mu.Lock()
	defer d.mu.Unlock()
	w := demoWords[d.next%len(demoWords)]
	d.next++
	return w
}

func lookup(match func(demoWord) bool) (demoWord, error) {
	for _, w := range demoWords {
		if match(w) {
			return w, nil
		}
	}
	return demoWord{}, &llm.ErrInvalidResponse{Err: fmt.Errorf("demo provider has no matching word")}
}
