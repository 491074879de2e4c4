package handlers

// User-facing error messages. The product ships in Italian.
const (
	MsgInternal            = "Errore interno"
	MsgCategoryNameMissing = "Nome categoria obbligatorio"
	MsgCategoryNotFound    = "Categoria non trovata"
	MsgSaveFailed          = "Errore durante il salvataggio"
	MsgUpdateFailed        = "Errore durante l'aggiornamento"
	MsgDeleteFailed        = "Errore durante l'eliminazione"

	MsgDishFieldsMissing   = "Nome, prezzo e categoria sono obbligatori"
	MsgDishNotFound        = "Piatto non trovato"
	MsgInvalidPrice        = "Prezzo non valido"
	MsgInvalidAvailability = "Disponibilità non valida"
	MsgUnknownAllergen     = "Allergene sconosciuto: %s"
	MsgImageUploadFailed   = "Errore durante il caricamento dell'immagine"
	MsgDishSaveFailed      = "Errore durante il salvataggio del piatto"
	MsgDishUpdateFailed    = "Errore durante l'aggiornamento del piatto"
	MsgDishDeleteFailed    = "Errore durante l'eliminazione del piatto"

	MsgOnboardingMissing = "Nome e Link sono obbligatori"
	MsgInvalidSlug       = "Il link può contenere solo lettere, numeri e trattini"
	MsgSlugTaken         = "Questo link è già stato preso. Scegline un altro!"
	MsgProfileCreate     = "Errore durante la creazione del profilo. Riprova."

	MsgRestaurantNameMissing = "Nome del ristorante obbligatorio"
	MsgInvalidOpeningHours   = "Orari di apertura non validi"
	MsgProfileUpdateFailed   = "Errore durante l'aggiornamento del profilo"

	MsgRestaurantNotFound = "Ristorante non trovato"
	MsgNoData             = "In attesa di dati"

	MsgCredentialsMissing = "Email e password sono obbligatorie"
	MsgInvalidCredentials = "Email o password non validi"
	MsgEmailTaken         = "Email già registrata"
)
