// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

const (
	createUser = `INSERT INTO users (username, password_hash, name, nickname, profile_picture, created_at)
    VALUES ($1, $2, $3, $4, $5, $6)
    RETURNING user_id, username, password_hash, name, nickname, profile_picture, created_at;`

	findUserByUsername = `SELECT user_id, username, password_hash, name, nickname, profile_picture, created_at
    FROM users
    WHERE username = $1;`

	findUserByID = `SELECT user_id, username, password_hash, name, nickname, profile_picture, created_at
    FROM users
    WHERE user_id = $1;`

	getAllUsers = `SELECT user_id, username, password_hash, name, nickname, profile_picture, created_at
    FROM users
    ORDER BY name ASC;`

	updateUserPassword = `UPDATE users
    SET password_hash = $1
    WHERE user_id = $2;`

	deleteUser = `DELETE FROM users
    WHERE user_id = $1;`

	createNote = `INSERT INTO notes (id, author_nickname, recipient_id, content, attachment, theme, created_at)
    VALUES ($1, $2, $3, $4, $5, $6, $7);`

	findNoteByID = `SELECT id, author_nickname, recipient_id, content, attachment, theme, position_x, position_y, created_at
    FROM notes
    WHERE id = $1;`

	findNotesByRecipient = `SELECT id, author_nickname, recipient_id, content, attachment, theme, position_x, position_y, created_at
    FROM notes
    WHERE recipient_id = $1
    ORDER BY created_at ASC;`

	findNotesByAuthor = `SELECT id, author_nickname, recipient_id, content, attachment, theme, position_x, position_y, created_at
    FROM notes
    WHERE author_nickname = $1
    ORDER BY created_at ASC;`

	updateNotePosition = `UPDATE notes
    SET position_x = $1, position_y = $2
    WHERE id = $3;`

	deleteNote = `DELETE FROM notes
    WHERE id = $1;`

	deleteNotesByUser = `DELETE FROM notes
    WHERE author_nickname = $1 OR recipient_id = $2;`
)
