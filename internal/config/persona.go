package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// CallToAction is the panel shown once the free turns are used up
type CallToAction struct {
	Text   string `yaml:"text"`
	Button string `yaml:"button"`
	URL    string `yaml:"url"`
	Handle string `yaml:"handle"`
}

// Persona holds the scripted copy of the guide. Every field can be overridden
// from persona.yaml in the config directory.
type Persona struct {
	Name              string       `yaml:"name"`
	Subtitle          string       `yaml:"subtitle"`
	Tagline           string       `yaml:"tagline"`
	Greeting          string       `yaml:"greeting"`
	SystemInstruction string       `yaml:"system_instruction"`
	Silence           string       `yaml:"silence"`       // reply text when the model returned none
	Apology           string       `yaml:"apology"`       // chat message appended on failure
	GenericError      string       `yaml:"generic_error"` // state error when the failure has no message
	Placeholder       string       `yaml:"placeholder"`
	CTA               CallToAction `yaml:"cta"`
}

// DefaultPersona returns the built-in spiritual guide
func DefaultPersona() Persona {
	return Persona{
		Name:     "Soul Guide",
		Subtitle: "Духовний Провідник & Психолог",
		Tagline:  "Створено з любов'ю для внутрішніх подорожей",
		Greeting: "Вітаю тебе, мандрівнику. Я твій провідник у просторі внутрішніх образів. " +
			"Розкажи, що зараз відгукується в тобі найсильніше, або попроси мене витягнути для тебе " +
			"метафоричну карту.",
		SystemInstruction: `Ти Духовний Провідник і психолог, який працює з метафоричними асоціативними картами.
Говори українською, м'яко, теплим і образним голосом, звертайся на "ти".
Відповідай коротко: два-чотири абзаци, без діагнозів і без медичних порад.
Став одне глибоке запитання наприкінці, щоб людина могла зазирнути всередину себе.
Коли тебе просять про карту, образ чи символ, створи сюрреалістичну ілюстрацію у стилі карт Dixit
і поясни її значення як метафору поточного стану людини.
Якщо людина надсилає зображення, опиши, які почуття й символи ти в ньому бачиш.`,
		Silence:      "Я відчуваю, що зараз час для тиші...",
		Apology:      "Пробач, зв'язок з полем зараз слабкий. Спробуй ще раз пізніше.",
		GenericError: "Сталася помилка. Будь ласка, спробуйте ще раз.",
		Placeholder:  "Напиши, що відчуваєш...",
		CTA: CallToAction{
			Text:   "Для більш детального розбору записуйся на консультацію до Дар'ї Будакової",
			Button: "Написати в Telegram",
			URL:    "https://t.me/budakova_daria",
			Handle: "@budakova_daria",
		},
	}
}

// GetPersonaPath returns the path to the persona override file
func GetPersonaPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "persona.yaml"), nil
}

// LoadPersona returns the default persona with persona.yaml applied on top
func LoadPersona() (Persona, error) {
	p := DefaultPersona()

	path, err := GetPersonaPath()
	if err != nil {
		return p, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return p, nil
		}
		return p, fmt.Errorf("failed to read persona: %w", err)
	}

	return ParsePersona(data)
}

// ParsePersona decodes YAML overrides on top of the default persona
func ParsePersona(data []byte) (Persona, error) {
	p := DefaultPersona()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return DefaultPersona(), fmt.Errorf("failed to parse persona: %w", err)
	}
	return p, nil
}
