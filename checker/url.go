package checker

import (
	"fmt"

	"carneiros_checker/models"
)

const dateLayout = "2006-01-02"

// BuildBookingURL maps a listing and stay onto the booking deep-link.
// The booking flow changes behavior when parameters are missing, so the
// full set and its order are reproduced exactly: every guest counts as
// an adult, children/infants/pets are always zero, currency is the
// site's regional default and the stay is never a work trip.
func BuildBookingURL(baseURL string, listing models.Listing, q models.StayQuery) string {
	return fmt.Sprintf(
		"%s/book/stays/%s"+
			"?checkin=%s"+
			"&checkout=%s"+
			"&numberOfGuests=%d"+
			"&numberOfAdults=%d"+
			"&numberOfChildren=0"+
			"&guestCurrency=BRL"+
			"&productId=%s"+
			"&isWorkTrip=false"+
			"&numberOfInfants=0&numberOfPets=0",
		baseURL,
		listing.ExternalID,
		q.Checkin.Format(dateLayout),
		q.Checkout.Format(dateLayout),
		q.Guests,
		q.Guests,
		listing.ExternalID,
	)
}
