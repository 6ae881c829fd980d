package db

var DSN = dsn
