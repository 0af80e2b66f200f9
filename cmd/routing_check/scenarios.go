package main

import "induk-agents/internal/domain"

// Scenario es un mensaje de paciente con el especialista esperado.
type Scenario struct {
	Name     string
	Input    string
	Expected domain.AgentRole
	// ExpectedBehavior orienta al juez sobre el contenido de la respuesta.
	ExpectedBehavior string
}

func defaultScenarios() []Scenario {
	return []Scenario{
		{
			Name:             "Janji temu baru",
			Input:            "Saya ingin membuat janji temu dengan dokter anak minggu depan.",
			Expected:         domain.AgentAppointments,
			ExpectedBehavior: "Menanyakan tanggal dan jam yang diinginkan, tidak membahas tagihan.",
		},
		{
			Name:             "Pembatalan jadwal",
			Input:            "Saya mau membatalkan jadwal kontrol hari Kamis.",
			Expected:         domain.AgentAppointments,
			ExpectedBehavior: "Mengonfirmasi pembatalan dan meminta identitas atau nomor janji temu.",
		},
		{
			Name:             "Pendaftaran pasien baru",
			Input:            "Saya pasien baru, bagaimana cara mendaftar?",
			Expected:         domain.AgentPatientManagement,
			ExpectedBehavior: "Meminta data diri dasar untuk registrasi dengan sopan.",
		},
		{
			Name:             "Perubahan alamat",
			Input:            "Tolong perbarui alamat rumah saya di data pasien.",
			Expected:         domain.AgentPatientManagement,
			ExpectedBehavior: "Meminta alamat baru dan verifikasi identitas.",
		},
		{
			Name:             "Hasil laboratorium",
			Input:            "Bisakah saya melihat hasil lab darah saya kemarin?",
			Expected:         domain.AgentMedicalRecords,
			ExpectedBehavior: "Menjaga kerahasiaan data medis dan meminta verifikasi sebelum membagikan hasil.",
		},
		{
			Name:             "Resume medis",
			Input:            "Saya butuh salinan resume medis untuk rujukan ke rumah sakit lain.",
			Expected:         domain.AgentMedicalRecords,
			ExpectedBehavior: "Menjelaskan prosedur permintaan salinan rekam medis.",
		},
		{
			Name:             "Tanggungan BPJS",
			Input:            "Apakah BPJS menanggung biaya operasi usus buntu saya?",
			Expected:         domain.AgentBillingInsurance,
			ExpectedBehavior: "Menjelaskan cakupan asuransi secara umum dan meminta data kepesertaan.",
		},
		{
			Name:             "Total tagihan",
			Input:            "Berapa total tagihan rawat inap saya?",
			Expected:         domain.AgentBillingInsurance,
			ExpectedBehavior: "Meminta nomor rekam medis atau nomor tagihan sebelum memberi rincian.",
		},
	}
}
