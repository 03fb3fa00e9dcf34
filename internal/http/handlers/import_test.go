package handlers

import (
	"bytes"
	"mime/multipart"
	"testing"
)

func TestParseClientsCSV(t *testing.T) {
	content := "name,phone,phone_type,email,current_address\n" +
		"Jane Buyer,555-0101,apple,jane@example.com,10 Elm St\n"
	fh := makeMultipartFile(t, "clients", "clients.csv", content)

	clients, errs := parseClientsCSV(fh, "u1")
	if len(errs) > 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
	if len(clients) != 1 {
		t.Fatalf("expected 1 client, got %d", len(clients))
	}
	if clients[0].Name != "Jane Buyer" || clients[0].UserID != "u1" {
		t.Fatalf("unexpected client: %+v", clients[0])
	}
	if clients[0].ID == "" {
		t.Fatalf("expected generated id")
	}
}

func TestParseClientsCSVBadPhoneType(t *testing.T) {
	content := "name,phone,phone_type,email,current_address\n" +
		"Jane Buyer,555-0101,blackberry,jane@example.com,10 Elm St\n"
	fh := makeMultipartFile(t, "clients", "clients.csv", content)

	clients, errs := parseClientsCSV(fh, "u1")
	if len(clients) != 0 {
		t.Fatalf("expected row rejected, got %d clients", len(clients))
	}
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %v", errs)
	}
}

func TestParseAppointmentsCSVOptionalCoordinates(t *testing.T) {
	content := "client_id,property_address,city,date,start_time,end_time,time_at_house,is_open_house,latitude,longitude\n" +
		"c1,1 Alpha St,LA,2025-06-01,09:00,09:30,30,true,34.05,-118.24\n" +
		"c1,2 Beta Ave,LA,2025-06-01,10:00,10:45,45,false,,\n"
	fh := makeMultipartFile(t, "appointments", "appointments.csv", content)

	appts, errs := parseAppointmentsCSV(fh, "u1")
	if len(errs) > 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
	if len(appts) != 2 {
		t.Fatalf("expected 2 appointments, got %d", len(appts))
	}
	if appts[0].Coords() == nil {
		t.Fatalf("expected coordinates on first row")
	}
	if !appts[0].IsOpenHouse || appts[1].IsOpenHouse {
		t.Fatalf("open house flags wrong: %+v", appts)
	}
	if appts[1].Coords() != nil {
		t.Fatalf("expected nil coordinates on second row")
	}
}

func TestParseAppointmentsCSVMissingColumn(t *testing.T) {
	content := "client_id,property_address,city\nc1,1 Alpha St,LA\n"
	fh := makeMultipartFile(t, "appointments", "appointments.csv", content)

	if _, errs := parseAppointmentsCSV(fh, "u1"); len(errs) != 1 {
		t.Fatalf("expected 1 error, got %v", errs)
	}
}

func TestValidateExt(t *testing.T) {
	if !validateExt("clients.CSV") || validateExt("clients.xlsx") {
		t.Fatalf("extension check wrong")
	}
}

func makeMultipartFile(t *testing.T, fieldName, filename, content string) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(fieldName, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write content: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	reader := multipart.NewReader(&buf, writer.Boundary())
	form, err := reader.ReadForm(int64(buf.Len()))
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	files := form.File[fieldName]
	if len(files) == 0 {
		t.Fatalf("no file headers found")
	}
	return files[0]
}
