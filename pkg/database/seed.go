package database

import (
	"study_portal_backend/internal/model"
	"time"
)

// SeedMaterials 启动时载入目录的初始资料，顺序即展示顺序（最新在前）
func SeedMaterials(now time.Time) []model.Material {
	day := 24 * time.Hour
	return []model.Material{
		{
			ID: 12, Branch: model.BranchComputer, Year: model.FirstYear, Subject: "General Notes",
			Title: "Calculus quick revision", Description: "Limits, continuity and derivatives with solved examples for Unit 1.",
			Type: model.TypeNotes, SizeLabel: "N/A", UploadedAt: now.Add(-1 * day), Downloads: 42, IsApproved: true,
			UploaderEmail: "student@sppu.com", Tags: []string{"maths", "unit-1", "calculus"},
		},
		{
			ID: 11, Branch: model.BranchMechanical, Year: model.SecondYear, Subject: "Engineering Thermodynamics",
			Title: "Thermodynamics Unit 2 Notes", Description: "First and second law of Thermodynamics, entropy and availability.",
			Type: model.TypeNotes, SizeLabel: "N/A", UploadedAt: now.Add(-2 * day), Downloads: 31, IsApproved: true,
			Tags: []string{"mechanical", "unit-2"},
		},
		{
			ID: 10, Branch: model.BranchComputer, Year: model.ThirdYear, Subject: "Database Management Systems",
			Title: "DBMS End-Sem 2023", Description: "End semester question paper, May 2023, 2019 pattern.",
			Type: model.TypePYQ, SizeLabel: "1.20MB", UploadedAt: now.Add(-3 * day), Downloads: 128, IsApproved: true,
			FileName: "dbms_endsem_2023.pdf",
		},
		{
			ID: 9, Branch: model.BranchIT, Year: model.SecondYear, Subject: "Data Structures and Algorithms",
			Title: "DSA Assignment 3", Description: "Trees, BST operations and traversal problems.",
			Type: model.TypeAssignment, SizeLabel: "0.45MB", UploadedAt: now.Add(-4 * day), Downloads: 57, IsApproved: true,
			FileName: "dsa_assignment_3.pdf",
		},
		{
			ID: 8, Branch: model.BranchCivil, Year: model.ThirdYear, Subject: "Structural Analysis",
			Title: "Structural Analysis Model Paper", Description: "Model paper with marking scheme for the in-semester exam.",
			Type: model.TypeModelPaper, SizeLabel: "0.88MB", UploadedAt: now.Add(-5 * day), Downloads: 23, IsApproved: true,
			FileName: "structural_analysis_model.pdf",
		},
		{
			ID: 7, Branch: model.BranchElectrical, Year: model.FirstYear, Subject: "Basic Electrical Engineering",
			Title: "BEE In-Sem 2022", Description: "In-semester question paper covering AC circuits and transformers.",
			Type: model.TypePYQ, SizeLabel: "0.95MB", UploadedAt: now.Add(-6 * day), Downloads: 76, IsApproved: true,
			FileName: "bee_insem_2022.pdf",
		},
		{
			ID: 6, Branch: model.BranchENTC, Year: model.FourthYear, Subject: "VLSI Design",
			Title: "VLSI Design Assignment", Description: "CMOS inverter characteristics and layout exercises.",
			Type: model.TypeAssignment, SizeLabel: "2.10MB", UploadedAt: now.Add(-7 * day), Downloads: 12, IsApproved: false,
			FileName: "vlsi_assignment.pdf", UploaderEmail: "student@sppu.com",
		},
		{
			ID: 5, Branch: model.BranchComputer, Year: model.FirstYear, Subject: "Programming and Problem Solving",
			Title: "PPS Python Notes", Description: "Python basics, control flow and functions for first year students.",
			Type: model.TypeNotes, SizeLabel: "N/A", UploadedAt: now.Add(-8 * day), Downloads: 64, IsApproved: true,
			Tags: []string{"python", "unit-1"},
		},
		{
			ID: 4, Branch: model.BranchMechanical, Year: model.ThirdYear, Subject: "Heat Transfer",
			Title: "Heat Transfer Model Paper", Description: "Conduction, convection and radiation numericals.",
			Type: model.TypeModelPaper, SizeLabel: "1.05MB", UploadedAt: now.Add(-9 * day), Downloads: 19, IsApproved: true,
			FileName: "heat_transfer_model.pdf",
		},
		{
			ID: 3, Branch: model.BranchComputer, Year: model.SecondYear, Subject: "Discrete Mathematics",
			Title: "Discrete Maths End-Sem 2022", Description: "Set theory, relations, graph theory questions.",
			Type: model.TypePYQ, SizeLabel: "0.70MB", UploadedAt: now.Add(-10 * day), Downloads: 88, IsApproved: true,
			FileName: "dm_endsem_2022.pdf",
		},
		{
			ID: 2, Branch: model.BranchComputer, Year: model.FirstYear, Subject: "Engineering Physics",
			Title: "Physics Quantum Mechanics Notes", Description: "Wave particle duality and Schrodinger equation summary.",
			Type: model.TypeNotes, SizeLabel: "N/A", UploadedAt: now.Add(-11 * day), Downloads: 15, IsApproved: true,
			Tags: []string{"physics", "unit-2"},
		},
		{
			ID: 1, Branch: model.BranchComputer, Year: model.FirstYear, Subject: "Engineering Chemistry",
			Title: "Chemistry Water Technology", Description: "Hardness of water, softening methods and numericals.",
			Type: model.TypeAssignment, SizeLabel: "0.30MB", UploadedAt: now.Add(-12 * day), Downloads: 9, IsApproved: true,
			FileName: "chemistry_water.pdf",
		},
	}
}

// SeedNotifications 页头通知，新的在前
func SeedNotifications() []model.Notification {
	return []model.Notification{
		{ID: 3, Message: "New PYQ uploaded for Database Management Systems.", Timestamp: "2 hours ago"},
		{ID: 2, Message: "Your note 'Calculus quick revision' got 10 new downloads.", Timestamp: "1 day ago"},
		{ID: 1, Message: "End-Sem exam timetable for the 2024 pattern is out.", Timestamp: "3 days ago", IsRead: true},
	}
}
