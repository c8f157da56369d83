package smtp

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"maps"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/textproto"
	"slices"
	"strings"
	"time"

	"github.com/dmitrymomot/mailer/pkg/mailer"
)

// buildMessage renders msg as an RFC 5322 message with MIME parts:
// a single text part, multipart/alternative for HTML+Text, and multipart/mixed
// around it when there are attachments.
func buildMessage(msg *mailer.Message, from, messageID string, date time.Time) ([]byte, error) {
	var buf bytes.Buffer

	writeHeader(&buf, "From", from)
	writeHeader(&buf, "To", strings.Join(msg.To, ", "))
	if len(msg.CC) > 0 {
		writeHeader(&buf, "Cc", strings.Join(msg.CC, ", "))
	}
	if msg.ReplyTo != "" {
		writeHeader(&buf, "Reply-To", msg.ReplyTo)
	}
	writeHeader(&buf, "Subject", mime.QEncoding.Encode("utf-8", msg.Subject))
	writeHeader(&buf, "Date", date.Format(time.RFC1123Z))
	writeHeader(&buf, "Message-ID", messageID)
	writeHeader(&buf, "MIME-Version", "1.0")
	if len(msg.Tags) > 0 {
		writeHeader(&buf, "X-Tags", strings.Join(slices.Sorted(maps.Keys(msg.Tags)), ", "))
	}
	for _, k := range slices.Sorted(maps.Keys(msg.Headers)) {
		writeHeader(&buf, k, msg.Headers[k])
	}

	body, contentType, err := buildBody(msg)
	if err != nil {
		return nil, err
	}

	if len(msg.Attachments) == 0 {
		writeHeader(&buf, "Content-Type", contentType)
		if !strings.HasPrefix(contentType, "multipart/") {
			writeHeader(&buf, "Content-Transfer-Encoding", "quoted-printable")
		}
		buf.WriteString("\r\n")
		buf.Write(body)
		return buf.Bytes(), nil
	}

	var mixed bytes.Buffer
	mw := multipart.NewWriter(&mixed)

	bodyHeader := textproto.MIMEHeader{"Content-Type": {contentType}}
	if !strings.HasPrefix(contentType, "multipart/") {
		bodyHeader.Set("Content-Transfer-Encoding", "quoted-printable")
	}
	part, err := mw.CreatePart(bodyHeader)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(body); err != nil {
		return nil, err
	}

	for _, a := range msg.Attachments {
		if err := writeAttachment(mw, a); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	writeHeader(&buf, "Content-Type", "multipart/mixed; boundary="+mw.Boundary())
	buf.WriteString("\r\n")
	buf.Write(mixed.Bytes())
	return buf.Bytes(), nil
}

// buildBody returns the encoded body and its content type.
func buildBody(msg *mailer.Message) ([]byte, string, error) {
	if msg.HTML == "" || msg.Text == "" {
		content, contentType := msg.Text, "text/plain; charset=UTF-8"
		if msg.HTML != "" {
			content, contentType = msg.HTML, "text/html; charset=UTF-8"
		}
		encoded, err := encodeQP(content)
		return encoded, contentType, err
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, p := range []struct{ contentType, content string }{
		{"text/plain; charset=UTF-8", msg.Text},
		{"text/html; charset=UTF-8", msg.HTML},
	} {
		part, err := w.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {p.contentType},
			"Content-Transfer-Encoding": {"quoted-printable"},
		})
		if err != nil {
			return nil, "", err
		}
		encoded, err := encodeQP(p.content)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(encoded); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}

	return buf.Bytes(), "multipart/alternative; boundary=" + w.Boundary(), nil
}

func writeAttachment(w *multipart.Writer, a mailer.Attachment) error {
	contentType := a.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	header := textproto.MIMEHeader{
		"Content-Type":              {contentType},
		"Content-Transfer-Encoding": {"base64"},
	}
	disposition := "attachment"
	if a.ContentID != "" {
		disposition = "inline"
		header.Set("Content-ID", "<"+a.ContentID+">")
	}
	header.Set("Content-Disposition", mime.FormatMediaType(disposition, map[string]string{"filename": a.Filename}))

	part, err := w.CreatePart(header)
	if err != nil {
		return err
	}

	encoded := base64.StdEncoding.EncodeToString(a.Content)
	for len(encoded) > 76 {
		if _, err := fmt.Fprintf(part, "%s\r\n", encoded[:76]); err != nil {
			return err
		}
		encoded = encoded[76:]
	}
	_, err = fmt.Fprintf(part, "%s\r\n", encoded)
	return err
}

func encodeQP(s string) ([]byte, error) {
	var buf bytes.Buffer
	w := quotedprintable.NewWriter(&buf)
	if _, err := w.Write([]byte(s)); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var headerSanitizer = strings.NewReplacer("\r", "", "\n", "")

func writeHeader(buf *bytes.Buffer, key, value string) {
	buf.WriteString(headerSanitizer.Replace(key))
	buf.WriteString(": ")
	buf.WriteString(headerSanitizer.Replace(value))
	buf.WriteString("\r\n")
}
