// Package templates provides email template components
package templates

import (
	"bytes"
	"html/template"
	"log"
)

// WelcomeEmailProps carries the fields for the customer welcome email.
type WelcomeEmailProps struct {
	Name     string
	StoreURL string
}

var (
	paragraphTemplate = template.Must(template.New("emailParagraph").Parse(
		`<p style="font-family: Helvetica, sans-serif; font-size: 16px; font-weight: normal; margin: 0; margin-bottom: 16px;">{{.Text}}</p>`))

	buttonTemplate = template.Must(template.New("emailButton").Parse(`
    <table role="presentation" border="0" cellpadding="0" cellspacing="0" style="border-collapse: separate; width: auto;">
      <tbody>
        <tr>
          <td style="font-family: Helvetica, sans-serif; font-size: 16px; vertical-align: top; border-radius: 4px; text-align: center; background-color: #0867ec;" valign="top" align="center" bgcolor="#0867ec">
            <a href="{{.URL}}" target="_blank" style="border: solid 2px #0867ec; border-radius: 4px; box-sizing: border-box; cursor: pointer; display: inline-block; font-size: 16px; font-weight: bold; margin: 0; padding: 12px 24px; text-decoration: none; background-color: #0867ec; border-color: #0867ec; color: #ffffff;">{{.Text}}</a>
          </td>
        </tr>
      </tbody>
    </table>`))
)

func renderParagraph(text string) string {
	var buf bytes.Buffer
	if err := paragraphTemplate.Execute(&buf, struct{ Text string }{Text: text}); err != nil {
		log.Printf("Error executing paragraph template: %v", err)
		return ""
	}
	return buf.String()
}

func renderButton(text, url string) string {
	var buf bytes.Buffer
	if err := buttonTemplate.Execute(&buf, struct{ Text, URL string }{Text: text, URL: url}); err != nil {
		log.Printf("Error executing button template: %v", err)
		return ""
	}
	return buf.String()
}

// GetWelcomeEmailContent builds the body of the welcome email sent after
// registration.
func GetWelcomeEmailContent(props WelcomeEmailProps) string {
	var buf bytes.Buffer
	buf.WriteString(renderParagraph("Hola " + props.Name + ","))
	buf.WriteString(renderParagraph("Tu cuenta en Tiendo ha sido creada. Ya puedes iniciar sesión y empezar a comprar."))
	if props.StoreURL != "" {
		buf.WriteString(renderButton("Ir a la tienda", props.StoreURL))
	}
	buf.WriteString(renderParagraph("Si no creaste esta cuenta, ignora este mensaje."))
	return buf.String()
}
