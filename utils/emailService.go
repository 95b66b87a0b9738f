package utils

import (
	"fmt"
	"log"

	"lms/config"
	"lms/models"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEnrollmentEmail sends an enrollment confirmation. Sending is best
// effort: failures are logged, never surfaced to the enrolling request.
func SendEnrollmentEmail(user models.User, course models.Course) {
	if config.AppConfig.SendgridApiKey == "" {
		log.Println("SENDGRID_API_KEY not set, skipping enrollment email")
		return
	}

	from := mail.NewEmail("LMS", config.AppConfig.EmailSender)
	to := mail.NewEmail(user.Name, user.Email)
	subject := fmt.Sprintf("You are enrolled in %s", course.Title)

	plain := fmt.Sprintf("Hi %s,\n\nYou have been enrolled in %s. Happy learning!", user.Name, course.Title)
	html := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif;">
				<h2>Welcome to %s!</h2>
				<p>Hi %s,</p>
				<p>Your enrollment is confirmed. You can start learning right away from your dashboard.</p>
			</body>
		</html>`, course.Title, user.Name)

	message := mail.NewSingleEmail(from, subject, to, plain, html)
	client := sendgrid.NewSendClient(config.AppConfig.SendgridApiKey)

	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending enrollment email to %s: %v", user.Email, err)
		return
	}
	if resp.StatusCode >= 400 {
		log.Printf("Enrollment email to %s rejected with status %d", user.Email, resp.StatusCode)
	}
}
