package card

import "fmt"

// fieldText holds the user-facing strings of one editable field.
type fieldText struct {
	label   string
	updated string // success toast
	failed  string // server rejected the update
	errored string // transport or unexpected failure
}

var texts = map[string]fieldText{
	FieldName: {
		label:   "Firmanavn",
		updated: "Firmanavn oppdatert",
		failed:  "Kunne ikke oppdatere firmanavn",
		errored: "En feil oppstod under oppdatering av firmanavn",
	},
	FieldOrgNr: {
		label:   "Org.nr",
		updated: "Organisasjonsnummer oppdatert",
		failed:  "Kunne ikke oppdatere organisasjonsnummer",
		errored: "En feil oppstod under oppdatering av organisasjonsnummer",
	},
	FieldAddress: {
		label:   "Adresse",
		updated: "Adresse oppdatert",
		failed:  "Kunne ikke oppdatere adresse",
		errored: "En feil oppstod under oppdatering av adresse",
	},
	FieldARR: {
		label:   "ARR",
		updated: "ARR oppdatert",
		failed:  "Kunne ikke oppdatere ARR",
		errored: "En feil oppstod under oppdatering av ARR",
	},
	FieldEmployees: {
		label:   "Ansatte",
		updated: "Antall ansatte oppdatert",
		failed:  "Kunne ikke oppdatere antall ansatte",
		errored: "En feil oppstod under oppdatering av antall ansatte",
	},
	FieldURL: {
		label:   "Nettside",
		updated: "Nettadresse oppdatert",
		failed:  "Kunne ikke oppdatere nettadresse",
		errored: "En feil oppstod under oppdatering av nettadresse",
	},
	FieldLinkedIn: {
		label:   "LinkedIn",
		updated: "LinkedIn-adresse oppdatert",
		failed:  "Kunne ikke oppdatere LinkedIn-adresse",
		errored: "En feil oppstod under oppdatering av LinkedIn-adresse",
	},
	FieldTwitter: {
		label:   "Twitter",
		updated: "Twitter-adresse oppdatert",
		failed:  "Kunne ikke oppdatere Twitter-adresse",
		errored: "En feil oppstod under oppdatering av Twitter-adresse",
	},
}

const (
	msgInvalidNumber = "Ugyldig tall"

	msgOwnerAdded        = "Kontoansvarlig lagt til"
	msgOwnerAddFailed    = "Kunne ikke legge til kontoansvarlig"
	msgOwnerRemoved      = "Kontoansvarlig fjernet"
	msgOwnerRemoveFailed = "Kunne ikke fjerne kontoansvarlig"
	msgOwnerRemoveError  = "En feil oppstod under fjerning av kontoansvarlig"

	msgOpportunityRemoveError = "En feil oppstod under fjerning av mulighet"
	msgPersonRemoveError      = "En feil oppstod under fjerning av person"

	labelCreated       = "Opprettet"
	labelLastContacted = "Sist kontaktet"
)

func msgOpportunityRemoved(name string) string {
	return fmt.Sprintf("%s fjernet fra muligheter", name)
}

func msgPersonRemoved(name string) string {
	return fmt.Sprintf("%s fjernet fra personer", name)
}

// Label returns the display label of a field key.
func Label(key string) string {
	if t, ok := texts[key]; ok {
		return t.label
	}
	switch key {
	case "date_created":
		return labelCreated
	case "last_contacted":
		return labelLastContacted
	}
	return key
}
