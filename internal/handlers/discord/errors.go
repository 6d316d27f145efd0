package discord

// BotError is a sentinel error of the Discord handler layer
type BotError string

// Error implements the error interface
func (e BotError) Error() string {
	return string(e)
}

const (
	ErrNilConfig          BotError = "config cannot be nil"
	ErrEmptyToken         BotError = "token cannot be empty"
	ErrNilSettings        BotError = "settings store cannot be nil"
	ErrNilTierTestService BotError = "tier test service cannot be nil"
	ErrNotConnected       BotError = "bot is not connected"
)

// inputError is a rejected command input; its text is shown to the invoker
type inputError string

func (e inputError) Error() string {
	return string(e)
}
