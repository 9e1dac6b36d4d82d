package outreach

import (
	"fmt"
	"strings"
)

// Tone buckets used to pick fallback templates.
const (
	ToneDirect    = "direct"
	ToneFriendly  = "friendly"
	ToneAuthority = "authority"
	TonePremium   = "premium"
)

type template struct {
	hookNamed string // %s is the prospect name
	hook      string
	main      string
	cta       string
}

var templates = map[string]template{
	ToneDirect: {
		hookNamed: "Quick question about your scaling process, %s.",
		hook:      "Quick question about your scaling process.",
		main:      "I've been following your growth and noticed a potential bottleneck in your outreach. We solve this by automating 90% of the workflow.",
		cta:       "Open to a 15-min audit?",
	},
	ToneFriendly: {
		hookNamed: "Hey %s! Loved your recent updates 🚀",
		hook:      "Hey! Loved your recent updates 🚀",
		main:      "I'm a huge fan of what you're building. I help founders like you reclaim 20 hours a week by streamlining outreach (without sounding robotic).",
		cta:       "Would love to share some ideas if you're open?",
	},
	ToneAuthority: {
		hookNamed: "Saw you're leading the charge at your company, %s.",
		hook:      "Saw you're leading the charge at your company.",
		main:      "We've helped 50+ similar agencies add $500k ARR. Your current trajectory suggests you're ready for our acceleration framework.",
		cta:       "Let's discuss your Q3 strategy.",
	},
	TonePremium: {
		hookNamed: "Your work caught my eye, %s.",
		hook:      "Your work caught my eye.",
		main:      "Excellence requires focus. We handle your entire outreach infrastructure so you can focus on high-leverage activities.",
		cta:       "Are you accepting new partners?",
	},
}

const (
	fallbackFollowUp1 = "Just bumping this - avoiding the 'did you see this' cliché, but genuinely curious."
	fallbackFollowUp2 = "Assuming you're swamped. I'll keep watching from the sidelines!"

	fallbackPainPoint = "Manual outreach scales linearly, not exponentially."
	fallbackAuthority = "Social proof matches their current stage."
	fallbackCuriosity = "Gap between current state and potential acceleration."
)

// ClassifyTone maps a free-form tone to a template bucket. Checks run in a fixed order, so a
// tone containing both "direct" and "friendly" is direct.
func ClassifyTone(tone string) string {
	for _, bucket := range []string{ToneDirect, ToneFriendly, ToneAuthority} {
		if strings.Contains(tone, bucket) {
			return bucket
		}
	}
	return TonePremium
}

// Synthesize builds a schema-conformant result from the raw prompt text without calling any
// provider. It is deterministic and never fails.
func Synthesize(text string) Result {
	fields := ParsePrompt(text)
	t := templates[ClassifyTone(fields.Tone)]

	hook := t.hook
	if fields.HasName() {
		hook = fmt.Sprintf(t.hookNamed, fields.Name)
	}

	return Result{
		Hook:      hook,
		Main:      t.main,
		FollowUp1: fallbackFollowUp1,
		FollowUp2: fallbackFollowUp2,
		Psychology: Psychology{
			PainPoint: fallbackPainPoint,
			Authority: fallbackAuthority,
			Curiosity: fallbackCuriosity,
			CTA:       t.cta,
		},
		IsMock: true,
	}
}
