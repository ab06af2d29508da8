package game

import (
	"image/color"

	"github.com/rs/zerolog"
)

// Notifier receives sounds and on-screen messages from the simulation.
// The core never depends on how they are presented.
type Notifier interface {
	PlaySound(id string)
	AddMessage(text string, c color.RGBA)
}

// Message colours.
var (
	ColourInfo    = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	ColourWarning = color.RGBA{R: 230, G: 190, B: 60, A: 255}
	ColourDanger  = color.RGBA{R: 220, G: 70, B: 60, A: 255}
	ColourWeather = color.RGBA{R: 110, G: 160, B: 230, A: 255}
)

const messageLogSize = 50

// Message is a single line in the message log.
type Message struct {
	Text   string
	Colour color.RGBA
}

// MessageLog is a ring buffer of the most recent messages. Sounds are only
// counted.
type MessageLog struct {
	entries [messageLogSize]Message
	head    int
	count   int
	sounds  map[string]int
}

// NewMessageLog creates an empty message log.
func NewMessageLog() *MessageLog {
	return &MessageLog{sounds: map[string]int{}}
}

// PlaySound records that sound id was played.
func (ml *MessageLog) PlaySound(id string) {
	ml.sounds[id]++
}

// AddMessage appends a message, evicting the oldest when full.
func (ml *MessageLog) AddMessage(text string, c color.RGBA) {
	ml.entries[ml.head] = Message{Text: text, Colour: c}
	ml.head = (ml.head + 1) % messageLogSize
	if ml.count < messageLogSize {
		ml.count++
	}
}

// Recent returns messages in chronological order (oldest first).
func (ml *MessageLog) Recent() []Message {
	result := make([]Message, ml.count)
	for i := 0; i < ml.count; i++ {
		idx := (ml.head - ml.count + i + messageLogSize) % messageLogSize
		result[i] = ml.entries[idx]
	}
	return result
}

// Len is the number of buffered messages.
func (ml *MessageLog) Len() int { return ml.count }

// SoundCount returns how often sound id was played.
func (ml *MessageLog) SoundCount(id string) int { return ml.sounds[id] }

// LogNotifier forwards notifications to a zerolog logger at debug level.
type LogNotifier struct {
	Log zerolog.Logger
}

func (n LogNotifier) PlaySound(id string) {
	n.Log.Debug().Str("sound", id).Msg("sound")
}

func (n LogNotifier) AddMessage(text string, _ color.RGBA) {
	n.Log.Debug().Msg(text)
}

// MultiNotifier fans out to every notifier in the slice.
type MultiNotifier []Notifier

func (m MultiNotifier) PlaySound(id string) {
	for _, n := range m {
		n.PlaySound(id)
	}
}

func (m MultiNotifier) AddMessage(text string, c color.RGBA) {
	for _, n := range m {
		n.AddMessage(text, c)
	}
}

type nopNotifier struct{}

func (nopNotifier) PlaySound(string) {}
func (nopNotifier) AddMessage(string, color.RGBA) {}
