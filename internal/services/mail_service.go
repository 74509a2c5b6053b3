package services

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"net/smtp"
	"path/filepath"
	"plantastic/internal/config"
	"strings"
)

type MailService struct {
	Host        string
	Port        string
	Username    string
	Password    string
	From        string
	SiteURL     string
	TemplateDir string
	Enabled     bool

	// send is swapped out in tests.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewMailService(cfg config.SMTP, siteURL, templatesDir string) *MailService {
	enabled := cfg.Host != "" && cfg.Port != "" && cfg.User != "" && cfg.Password != "" && cfg.From != ""
	if !enabled {
		log.Println("MailService disabled: missing SMTP settings")
	}

	return &MailService{
		Host:        cfg.Host,
		Port:        cfg.Port,
		Username:    cfg.User,
		Password:    cfg.Password,
		From:        cfg.From,
		SiteURL:     strings.TrimRight(siteURL, "/"),
		TemplateDir: filepath.Join(templatesDir, "email"),
		Enabled:     enabled,
		send:        smtp.SendMail,
	}
}

func (s *MailService) buildMessage(to []string, subject, body string) []byte {
	mime := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"
	return []byte(fmt.Sprintf("To: %s\r\n"+
		"From: PlantasticCare <%s>\r\n"+
		"Subject: %s\r\n"+
		"%s\r\n%s", strings.Join(to, ","), s.From, subject, mime, body))
}

func (s *MailService) sendAsync(to []string, subject string, body string) {
	if !s.Enabled {
		return
	}

	go func() {
		auth := smtp.PlainAuth("", s.Username, s.Password, s.Host)
		addr := fmt.Sprintf("%s:%s", s.Host, s.Port)

		err := s.send(addr, auth, s.From, to, s.buildMessage(to, subject, body))
		if err != nil {
			log.Printf("Failed to send email to %v: %v", to, err)
		} else {
			log.Printf("Email sent to %v: %s", to, subject)
		}
	}()
}

func (s *MailService) parseTemplate(templateName string, data interface{}) (string, error) {
	path := filepath.Join(s.TemplateDir, templateName)
	t, err := template.ParseFiles(path)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", templateName, err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", templateName, err)
	}
	return buf.String(), nil
}

// SendNewsletterWelcome greets a new newsletter subscriber.
func (s *MailService) SendNewsletterWelcome(email string) {
	if !s.Enabled {
		return
	}
	body, err := s.parseTemplate("newsletter.html", map[string]string{
		"SiteURL":        s.SiteURL,
		"UnsubscribeURL": s.SiteURL + "/newsletter/unsubscribe",
	})
	if err != nil {
		log.Printf("Error rendering newsletter email: %v", err)
		return
	}
	s.sendAsync([]string{email}, "Welcome to the PlantasticCare newsletter", body)
}

// SendCommentNotification tells a post author that someone commented on their post.
func (s *MailService) SendCommentNotification(email, activeUser, postTitle, commentText, postID string) {
	if !s.Enabled {
		return
	}
	data := map[string]string{
		"ActiveUser":  activeUser,
		"PostTitle":   postTitle,
		"CommentText": commentText,
		"PostLink":    s.SiteURL + "/forum#post-" + postID,
	}
	body, err := s.parseTemplate("comment.html", data)
	if err != nil {
		log.Printf("Error rendering comment email: %v", err)
		return
	}
	s.sendAsync([]string{email}, activeUser+" commented on \""+postTitle+"\"", body)
}
