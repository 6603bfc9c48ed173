package content

import "github.com/VictorTPhan/ella-app/internal/gateway"

const phoneticsOutput = `For each syllable, give the closest sounding English word or syllable,
explain your reasoning in "thought_process", and put the resulting sequence of syllables,
separated by hyphens, in "final_sequence". Respond in JSON.`

var (
	topicContract = gateway.Contract{
		Name: "topic",
		System: `The user is learning Korean and asks you for a random topic.
Reply with an English noun or short phrase in "topic" and, in "tutorial", a short
explanation of how to say it in Korean. Respond in JSON.`,
		Keys:    []string{"topic", "tutorial"},
		Purpose: "topic",
	}

	translateContract = gateway.Contract{
		Name: "translate",
		System: `The user gives you an English word or phrase. Translate it into Korean
written in Hangul and put it in "hangul". Respond in JSON.`,
		Keys:    []string{"hangul"},
		Purpose: "translate",
	}

	hangulPhoneticsContract = gateway.Contract{
		Name: "hangul-phonetics",
		System: `The user wants to speak Korean without reading it and gives you a Korean
phrase written in Hangul. ` + phoneticsOutput,
		Keys:    []string{"thought_process", "final_sequence"},
		Purpose: "hangul-phonetics",
	}

	englishPhoneticsContract = gateway.Contract{
		Name: "english-phonetics",
		System: `The user wants to speak Korean without reading it and gives you an English
phrase. Translate it into Korean, then: ` + phoneticsOutput,
		Keys:    []string{"thought_process", "final_sequence"},
		Purpose: "english-phonetics",
	}

	sentenceContract = gateway.Contract{
		Name: "sentence",
		System: `The user gives you a topic. Write a short Korean sentence about it, then
remove the sentence's subject. Put the removed subject, in Hangul, in "subject" and the
sentence with "___" where the subject was in "sentence_with_blank". Respond in JSON.`,
		Keys:    []string{"subject", "sentence_with_blank"},
		Purpose: "sentence",
	}

	distractorsContract = gateway.Contract{
		Name: "distractors",
		System: `The user gives you a JSON object whose "sequence" is a hyphenated
sequence of phonetic syllables. Produce three modified sequences in "mutation_1",
"mutation_2" and "mutation_3". Each must be pronounced differently from the input and look
significantly different from the input and from each other. Respond in JSON.`,
		Keys:    []string{"mutation_1", "mutation_2", "mutation_3"},
		Purpose: "distractors",
	}
)
