package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys. Format arguments are listed after each key.
const (
	KeyPrompt  = "game.prompt"  // min, max
	KeyInvalid = "game.invalid" // min, max
	KeyTooLow  = "game.too_low"
	KeyTooHigh = "game.too_high"
	KeyWon     = "game.won"  // secret, attempts
	KeyLost    = "game.lost" // max attempts, secret

	KeyTitle       = "page.title"
	KeyPlaceholder = "page.placeholder"
	KeySubmit      = "page.submit"
	KeyAttempts    = "page.attempts"
	KeyRestart     = "page.restart"
	KeyHistory     = "page.history"    // won, played
	KeyRoundWon    = "page.round_won"  // round, attempts
	KeyRoundLost   = "page.round_lost" // round, secret
	KeyPlayAgain   = "cli.play_again"
)

func init() {
	en := language.English
	message.SetString(en, KeyPrompt, "Guess a number between %d and %d.")
	message.SetString(en, KeyInvalid, "Please enter a valid number between %d and %d.")
	message.SetString(en, KeyTooLow, "Too low! Try again.")
	message.SetString(en, KeyTooHigh, "Too high! Try again.")
	message.SetString(en, KeyWon, "Congratulations! You found the number %d in %d attempts.")
	message.SetString(en, KeyLost, "Too bad! You used all %d attempts. The number was %d.")
	message.SetString(en, KeyTitle, "Guess the Number")
	message.SetString(en, KeyPlaceholder, "Your number...")
	message.SetString(en, KeySubmit, "Check")
	message.SetString(en, KeyAttempts, "Attempts")
	message.SetString(en, KeyRestart, "Play again")
	message.SetString(en, KeyHistory, "Rounds won: %d of %d")
	message.SetString(en, KeyRoundWon, "Round %d: found in %d attempts")
	message.SetString(en, KeyRoundLost, "Round %d: lost, the number was %d")
	message.SetString(en, KeyPlayAgain, "Play again? [y/N] ")

	fr := language.French
	message.SetString(fr, KeyPrompt, "Devinez un nombre entre %d et %d.")
	message.SetString(fr, KeyInvalid, "Veuillez entrer un nombre valide entre %d et %d.")
	message.SetString(fr, KeyTooLow, "Trop petit ! Essayez encore.")
	message.SetString(fr, KeyTooHigh, "Trop grand ! Essayez encore.")
	message.SetString(fr, KeyWon, "Félicitations ! Vous avez trouvé le nombre %d en %d essais.")
	message.SetString(fr, KeyLost, "Dommage ! Vous avez utilisé vos %d tentatives. Le nombre était %d.")
	message.SetString(fr, KeyTitle, "Jeu du Devin")
	message.SetString(fr, KeyPlaceholder, "Votre nombre...")
	message.SetString(fr, KeySubmit, "Vérifier")
	message.SetString(fr, KeyAttempts, "Tentatives")
	message.SetString(fr, KeyRestart, "Recommencer")
	message.SetString(fr, KeyHistory, "Manches gagnées : %d sur %d")
	message.SetString(fr, KeyRoundWon, "Manche %d : trouvé en %d essais")
	message.SetString(fr, KeyRoundLost, "Manche %d : perdu, le nombre était %d")
	message.SetString(fr, KeyPlayAgain, "Rejouer ? [o/N] ")
}
